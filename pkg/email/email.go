// pkg/email/email.go
package email

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"time"
)

type EmailService struct {
	apiKey    string
	from      string
	templates *template.Template
}

type EmailData struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Html    string `json:"html"`
}

// Template data structures
type VerificationEmailData struct {
	Name        string
	CallbackURL string
}

type CollaboratorAddedData struct {
	Name           string
	WorkspaceTitle string
}

type TrialEndingData struct {
	Name     string
	PlanName string
	TrialEnd time.Time
	DaysLeft int
}

func NewEmailService(apiKey string) (*EmailService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend API key is required")
	}

	templates, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("error loading email templates: %v", err)
	}

	return &EmailService{
		apiKey:    apiKey,
		from:      "Cypress <noreply@cypress.app>",
		templates: templates,
	}, nil
}

func (s *EmailService) sendTemplateEmail(to, subject, templateName string, data interface{}) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, templateName, data); err != nil {
		return fmt.Errorf("template execution error: %v", err)
	}

	emailData := EmailData{
		From:    s.from,
		To:      to,
		Subject: subject,
		Html:    body.String(),
	}

	jsonData, err := json.Marshal(emailData)
	if err != nil {
		return fmt.Errorf("error marshaling email data: %v", err)
	}

	req, err := http.NewRequest("POST", "https://api.resend.com/emails", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %v", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response body: %v", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Printf("Resend API response: Status: %d, Body: %s", resp.StatusCode, string(respBody))
		return fmt.Errorf("resend API error: %s", string(respBody))
	}

	return nil
}

// Email sending methods
func (s *EmailService) SendVerificationEmail(email, name, callbackURL string) error {
	data := VerificationEmailData{
		Name:        name,
		CallbackURL: callbackURL,
	}
	return s.sendTemplateEmail(email, "Verify your Cypress account ✉️", "verification.html", data)
}

func (s *EmailService) SendCollaboratorAddedEmail(email, name, workspaceTitle string) error {
	data := CollaboratorAddedData{
		Name:           name,
		WorkspaceTitle: workspaceTitle,
	}
	return s.sendTemplateEmail(email, "You've been added to a workspace 🤝", "collaborator_added.html", data)
}

func (s *EmailService) SendTrialEndingEmail(email, name, planName string, trialEnd time.Time, daysLeft int) error {
	data := TrialEndingData{
		Name:     name,
		PlanName: planName,
		TrialEnd: trialEnd,
		DaysLeft: daysLeft,
	}
	return s.sendTemplateEmail(email, "Your trial is ending soon ⏳", "trial_ending.html", data)
}
