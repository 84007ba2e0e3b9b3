package domain

// Settings holds the site-wide storefront settings kept in the database and
// injected into the components that need them. Read through an explicit
// reloadable holder, never via ad-hoc "first row" lookups.
type Settings struct {
	ID          uint
	StoreTitle  string
	Currency    string
	ServerEmail string
	EmailHost   string
	EmailPort   int
	EmailUseTLS bool
}

// DefaultSettings returns the settings used until an operator saves a row.
func DefaultSettings() *Settings {
	return &Settings{
		StoreTitle: "shop",
		Currency:   "$",
	}
}
