package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for asynchronous
// email (welcome mail). Reset mail is sent synchronously instead, because
// its failure has to roll back the stored reset token.
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}
