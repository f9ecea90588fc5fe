package utils

import (
	"encoding/json"
	"fmt"
	"lend/appstate"
	"lend/config"
	"lend/database"
	"lend/emi"
	"lend/models"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// logReminder logs scheduler events with timestamp
func logReminder(message string) {
	log.Printf("[EMI-REMINDER %s] %s", time.Now().Format(time.RFC3339), message)
}

// StartEMIReminderScheduler runs a daily job that logs a reminder for every
// active loan's upcoming installment. Controlled by EMI_REMINDER_ENABLED.
func StartEMIReminderScheduler() *cron.Cron {
	if !config.AppConfig.ReminderCronEnabled {
		return nil
	}

	c := cron.New()
	_, err := c.AddFunc(config.AppConfig.ReminderCronSpec, remindUpcomingEMIs)
	if err != nil {
		logReminder("Error scheduling EMI reminders: " + err.Error())
		return nil
	}

	c.Start()
	logReminder("EMI reminder scheduler started (" + config.AppConfig.ReminderCronSpec + ")")
	return c
}

// remindUpcomingEMIs scans persisted loan records and logs each borrower's
// outstanding installment.
func remindUpcomingEMIs() {
	db := database.Database.Db

	var records []models.KVRecord
	if err := db.Where("key LIKE ?", "%:"+appstate.KeyLoan).Find(&records).Error; err != nil {
		logReminder("Error fetching loan records: " + err.Error())
		return
	}

	for _, record := range records {
		mobile := strings.TrimSuffix(record.Key, ":"+appstate.KeyLoan)

		var loan models.LoanRecord
		if err := json.Unmarshal(record.Value, &loan); err != nil {
			logReminder("Error decoding loan for " + mobile + ": " + err.Error())
			continue
		}

		stats := emi.Derive(loan)
		if stats.RemainingAmount <= 0 {
			continue
		}

		logReminder(fmt.Sprintf("Upcoming EMI for %s: ₹%d (%d of %d paid, ₹%.0f remaining)",
			mobile, loan.EMI, loan.PaidEMIs, loan.Months, stats.RemainingAmount))
	}
}
