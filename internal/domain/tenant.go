package domain

// TenantKey identifies one (company, location) pair. Location may be empty for
// company-level installs.
func TenantKey(companyID, locationID string) string {
	if locationID == "" {
		return companyID
	}
	return companyID + ":" + locationID
}
