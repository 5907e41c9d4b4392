package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/sclayai/proposal-intake/internal/entity"
	"github.com/sclayai/proposal-intake/internal/infra/integration/webhook"
	"github.com/sclayai/proposal-intake/internal/usecase"
)

// Posts one sample prospect to WEBHOOK_URL so the automation can be checked
// without going through the form.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("warning: .env not found, using process environment")
	}

	url := os.Getenv("WEBHOOK_URL")
	if url == "" {
		log.Fatal("WEBHOOK_URL must be set")
	}

	d := usecase.NewDraft()
	d.Set("prospectBusinessName", "Apex Roofing")
	d.Set("prospectFirstName", "Joan")
	d.Set("prospectLastName", "Tester")
	d.Set("prospectPhone", "+15555550100")
	d.Set("prospectEmail", "joan.tester@example.com")
	d.Set("prospectCityState", "Denver, CO")
	d.Set("prospectBusinessType", "Roofer")
	d.Set("prospectPainPoint", "Missed calls after hours")
	d.Add("prospectServicesInterested", "AI call agent")
	d.Set("prospectBudgetFeel", "Open")
	d.Set("prospectFollowUpType", "Just info")

	in := d.ProspectInput()
	if errs := usecase.ValidateProspectInput(in); len(errs) > 0 {
		log.Fatalf("sample prospect is invalid: %v", errs)
	}

	fmt.Println("Forwarding sample prospect...")
	fmt.Printf("   Business: %s\n", in.ProspectBusinessName)
	fmt.Printf("   Contact: %s %s\n", in.ProspectFirstName, in.ProspectLastName)
	fmt.Printf("   Endpoint: %s\n\n", url)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client := webhook.NewClient(url, 10*time.Second)
	if err := client.Forward(ctx, usecase.ForwardPayload{FormType: entity.KindProspect, ProspectInput: &in}); err != nil {
		log.Fatalf("forward failed: %v", err)
	}
	fmt.Println("Webhook accepted the payload.")
}
