package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed
// fields. Returns the defaultField if the input is empty or not whitelisted.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// DonationSortFields contains allowed sort fields for food donations
var DonationSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"title":       true,
	"expiry_date": true,
	"status":      true,
	"city":        true,
}

// TransactionSortFields contains allowed sort fields for donation transactions
var TransactionSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"status":       true,
	"accepted_at":  true,
	"completed_at": true,
}

// VolunteerSortFields contains allowed sort fields for volunteers
var VolunteerSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"status":     true,
	"rating":     true,
	"city":       true,
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"name":          true,
	"email":         true,
	"status":        true,
	"last_login_at": true,
}

// OrganizationSortFields contains allowed sort fields for organizations
var OrganizationSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"type":       true,
	"rating":     true,
	"city":       true,
}
