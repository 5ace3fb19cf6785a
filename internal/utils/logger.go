package utils

import (
	"log"
	"strings"
)

// LogEvent writes one line for a domain-level action. Module is a short
// subsystem tag (docs, reserve, layout); message carries identifiers only,
// never passenger details.
func LogEvent(requestID, module, action, message string) {
	rid := strings.TrimSpace(requestID)
	if rid == "" {
		rid = "-"
	}
	log.Printf("[%s] action=%s request_id=%s %s", strings.ToUpper(strings.TrimSpace(module)), action, rid, message)
}
