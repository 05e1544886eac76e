package govtrack

import (
	"encoding/json"
	"fmt"
)

// Legislator is a current member of the Senate or the House
type Legislator struct {
	Website         string `json:"website"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	State           string `json:"state"`
	Title           string `json:"title"`
	Name            string `json:"name"`
	LeadershipTitle string `json:"leadership_title"` // "" when the member holds no leadership post
	District        string `json:"district"`         // "" for senators
}

func (l Legislator) String() string {
	return fmt.Sprintf("<%s Name: %s>", l.Title, l.Name)
}

// Bill is a piece of legislation matched by a keyword search
type Bill struct {
	IsAlive         bool   `json:"is_alive"`
	IsCurrent       bool   `json:"is_current"`
	Title           string `json:"title"`
	Number          int    `json:"number"`
	Description     string `json:"description"`
	CongressSession int    `json:"congress_session"`
	IntroducedDate  string `json:"introduced_date"`
}

func (b Bill) String() string {
	return fmt.Sprintf("<Bill %s Number: %d>", b.Title, b.Number)
}

// Raw API shapes. Pointer fields are nil for null or absent values; presence
// is checked separately by the mappers.

type rawPerson struct {
	Name *string `json:"name"`
}

type rawRole struct {
	Website         *string    `json:"website"`
	StartDate       *string    `json:"startdate"`
	EndDate         *string    `json:"enddate"`
	State           *string    `json:"state"`
	TitleLong       *string    `json:"title_long"`
	Person          *rawPerson `json:"person"`
	LeadershipTitle *string    `json:"leadership_title"`
	District        *rawScalar `json:"district"`
}

type rawBill struct {
	IsAlive           *bool   `json:"is_alive"`
	IsCurrent         *bool   `json:"is_current"`
	Title             *string `json:"title"`
	Number            *int    `json:"number"`
	StatusDescription *string `json:"current_status_description"`
	Congress          *int    `json:"congress"`
	IntroducedDate    *string `json:"introduced_date"`
}

// response is the envelope every list endpoint returns
type response struct {
	Objects []json.RawMessage `json:"objects"`
}
