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

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
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

// InvoiceSortFields contains allowed sort fields for invoices
var InvoiceSortFields = map[string]bool{
	"id":                    true,
	"created_at":            true,
	"updated_at":            true,
	"voucher_date":          true,
	"title":                 true,
	"status":                true,
	"total_net":             true,
	"total_gross":           true,
	"transmitted_at":        true,
	"transmission_attempts": true,
}

// ContactSortFields contains allowed sort fields for contacts
var ContactSortFields = map[string]bool{
	"id":                true,
	"created_at":        true,
	"updated_at":        true,
	"company_name":      true,
	"customer_number":   true,
	"remote_contact_id": true,
	"remote_version":    true,
}
