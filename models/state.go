package models

// Tab is the active view of the application.
type Tab string

const (
	TabDashboard Tab = "dashboard"
	TabQuotes    Tab = "quotes"
	TabNewQuote  Tab = "new-quote"
	TabCatalog   Tab = "catalog"
)

// Valid reports whether t is a known tab.
func (t Tab) Valid() bool {
	switch t {
	case TabDashboard, TabQuotes, TabNewQuote, TabCatalog:
		return true
	}
	return false
}

// AppState is everything that is persisted: the quote collection, newest
// first, and the current view.
type AppState struct {
	Quotes    []Quote `json:"quotes"`
	ActiveTab Tab     `json:"activeTab"`
}

// EmptyAppState is the state used when nothing has been stored yet.
func EmptyAppState() AppState {
	return AppState{Quotes: []Quote{}, ActiveTab: TabDashboard}
}
