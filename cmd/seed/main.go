package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/codetrail/bootcamp-api/config"
	"github.com/codetrail/bootcamp-api/internal/domain/entity"
	"github.com/codetrail/bootcamp-api/internal/infrastructure/mongodb"
	"github.com/codetrail/bootcamp-api/pkg/helpers"
)

// userSeed carries the plaintext password from the fixture; it is hashed
// before insert.
type userSeed struct {
	ID       primitive.ObjectID `json:"_id"`
	Name     string             `json:"name"`
	Email    string             `json:"email"`
	Password string             `json:"password"`
	Role     string             `json:"role"`
}

type bootcampSeed struct {
	ID            primitive.ObjectID `json:"_id"`
	Name          string             `json:"name"`
	Description   string             `json:"description"`
	Website       string             `json:"website"`
	Phone         string             `json:"phone"`
	Email         string             `json:"email"`
	Address       string             `json:"address"`
	Location      entity.Location    `json:"location"`
	Careers       []string           `json:"careers"`
	Housing       bool               `json:"housing"`
	JobAssistance bool               `json:"job_assistance"`
	JobGuarantee  bool               `json:"job_guarantee"`
	AcceptGi      bool               `json:"accept_gi"`
	User          primitive.ObjectID `json:"user"`
}

type courseSeed struct {
	ID                   primitive.ObjectID `json:"_id"`
	Title                string             `json:"title"`
	Description          string             `json:"description"`
	Weeks                int                `json:"weeks"`
	Tuition              int                `json:"tuition"`
	MinimumSkill         string             `json:"minimum_skill"`
	ScholarshipAvailable bool               `json:"scholarship_available"`
	Bootcamp             primitive.ObjectID `json:"bootcamp"`
	User                 primitive.ObjectID `json:"user"`
}

func main() {
	importData := flag.Bool("i", false, "import fixture data")
	deleteData := flag.Bool("d", false, "delete all data")
	dataDir := flag.String("data", "_data", "fixture directory")
	flag.Parse()

	if *importData == *deleteData {
		log.Fatal("pass exactly one of -i (import) or -d (delete)")
	}

	_ = godotenv.Load()
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoTimeout)
	if err != nil {
		log.Fatalf("mongodb connect: %v", err)
	}
	defer func() { _ = db.Client().Disconnect(context.Background()) }()

	if *deleteData {
		for _, col := range []string{"users", "bootcamps", "courses"} {
			if _, err := db.Collection(col).DeleteMany(ctx, bson.M{}); err != nil {
				log.Fatalf("clear %s: %v", col, err)
			}
		}
		log.Println("data destroyed")
		return
	}

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("ensure indexes: %v", err)
	}

	var users []userSeed
	readFixture(filepath.Join(*dataDir, "users.json"), &users)
	now := time.Now()
	for _, u := range users {
		hash, err := helpers.HashPassword(u.Password)
		if err != nil {
			log.Fatalf("hash password for %s: %v", u.Email, err)
		}
		doc := entity.User{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			Password:  hash,
			Role:      u.Role,
			CreatedAt: now,
		}
		if _, err := db.Collection("users").InsertOne(ctx, doc); err != nil {
			log.Fatalf("insert user %s: %v", u.Email, err)
		}
	}

	var bootcamps []bootcampSeed
	readFixture(filepath.Join(*dataDir, "bootcamps.json"), &bootcamps)
	for _, b := range bootcamps {
		doc := entity.Bootcamp{
			ID:            b.ID,
			Name:          b.Name,
			Slug:          helpers.Slugify(b.Name),
			Description:   b.Description,
			Website:       b.Website,
			Phone:         b.Phone,
			Email:         b.Email,
			Address:       b.Address,
			Location:      b.Location,
			Careers:       b.Careers,
			Housing:       b.Housing,
			JobAssistance: b.JobAssistance,
			JobGuarantee:  b.JobGuarantee,
			AcceptGi:      b.AcceptGi,
			User:          b.User,
			CreatedAt:     now,
		}
		if doc.Careers == nil {
			doc.Careers = []string{}
		}
		if _, err := db.Collection("bootcamps").InsertOne(ctx, doc); err != nil {
			log.Fatalf("insert bootcamp %s: %v", b.Name, err)
		}
	}

	var courses []courseSeed
	readFixture(filepath.Join(*dataDir, "courses.json"), &courses)
	for _, c := range courses {
		doc := entity.Course{
			ID:                   c.ID,
			Title:                c.Title,
			Description:          c.Description,
			Weeks:                c.Weeks,
			Tuition:              c.Tuition,
			MinimumSkill:         c.MinimumSkill,
			ScholarshipAvailable: c.ScholarshipAvailable,
			Bootcamp:             c.Bootcamp,
			User:                 c.User,
			CreatedAt:            now,
		}
		if _, err := db.Collection("courses").InsertOne(ctx, doc); err != nil {
			log.Fatalf("insert course %s: %v", c.Title, err)
		}
	}

	log.Printf("imported %d users, %d bootcamps, %d courses", len(users), len(bootcamps), len(courses))
}

func readFixture(path string, out any) {
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("read %s: %v", path, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.Fatalf("parse %s: %v", path, err)
	}
}
