package model

// NoMatchesMessage is shown when no vehicle survives filtering.
const NoMatchesMessage = "No matching cars found based on your criteria. Try adjusting your filters."

// Display holds presentation strings for a matched vehicle. It never feeds
// back into filtering or ranking.
type Display struct {
	Model          string `json:"model"`
	Year           string `json:"year"`
	Price          string `json:"price"`
	MPG            string `json:"mpg"`
	Horsepower     string `json:"horsepower"`
	Transmission   string `json:"transmission"`
	Mileage        string `json:"mileage"`
	FuelType       string `json:"fuelType"`
	FinanceMonthly string `json:"finance_monthly"`
	LeaseMonthly   string `json:"lease_monthly"`
	Score          string `json:"similarity_score,omitempty"`
}

// Match is a surviving vehicle together with its similarity score.
type Match struct {
	Score   *float64 `json:"score,omitempty"`
	Display Display  `json:"display"`
	Vehicle Vehicle  `json:"vehicle"`
}

// Result is the outcome of running a query against a catalog.
type Result struct {
	BestMatch      *Match   `json:"best_match,omitempty"`
	Mode           RankMode `json:"mode"`
	Matches        []Match  `json:"matches"`
	TotalSurvivors int      `json:"total_matches"`
	Tolerance      float64  `json:"tolerance"`
}

// Empty reports whether no vehicle survived filtering. An empty result is a
// valid outcome, not an error.
func (r *Result) Empty() bool {
	return r == nil || r.TotalSurvivors == 0
}
