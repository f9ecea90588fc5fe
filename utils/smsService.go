package utils

import (
	"fmt"
	"lend/config"
	"log"

	"github.com/go-resty/resty/v2"
)

// SendOTPToMobile delivers an OTP to a mobile number. In local mode (the
// default) the code is only logged for developer visibility and never leaves
// the process; otherwise it goes through the SMS gateway.
func SendOTPToMobile(mobile, otp string) error {
	if config.AppConfig.SMSLocalMode {
		log.Printf("📌 OTP for %s: %s", mobile, otp)
		return nil
	}

	client := resty.New()

	// Variables (OTP and validity time in minutes)
	variables := fmt.Sprintf("%s|10", otp)

	resp, err := client.R().
		SetQueryParams(map[string]string{
			"authorization":    config.AppConfig.LocalTextApi,
			"route":            "dlt",
			"sender_id":        "LENDGO",
			"message":          "197302",
			"variables_values": variables,
			"flash":            "0",
			"numbers":          mobile,
		}).
		Get(config.AppConfig.LocalTextApiUrl)
	if err != nil {
		log.Printf("Error while sending OTP: %v", err)
		return err
	}

	if resp.StatusCode() != 200 {
		log.Printf("Failed to send OTP, response code: %d", resp.StatusCode())
		return fmt.Errorf("failed to send OTP, code: %d", resp.StatusCode())
	}

	log.Println("OTP sent successfully to", mobile)
	return nil
}
