package dto

type BrowseInput struct {
	Section  string
	Category string
	Search   string
}

type GameOutput struct {
	ID          int
	Name        string
	Category    string
	Genre       string
	Featured    bool
	About       string
	Link        string
	Popularity  string
	ReleaseDate string
	Build       string
	Developer   string
	Controls    string
	Favorite    bool
}

type BrowseOutput struct {
	Section       string
	Title         string
	Games         []GameOutput
	Empty         bool
	FavoriteCount int
}

type LoadOutput struct {
	Location string
	Games    int
	Dropped  []int
	Fallback bool
	Reason   string
}
