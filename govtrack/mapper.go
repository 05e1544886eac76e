package govtrack

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// rawScalar accepts a JSON string or number and keeps its text. The API sends
// district as a number.
type rawScalar string

func (s *rawScalar) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = rawScalar(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("want string or number, got %s", b)
	}
	*s = rawScalar(n.String())
	return nil
}

func missing(field string) error {
	return newError(KindIncompleteData, nil, "the given information was incomplete: missing %q", field)
}

// requireFields returns an incomplete_data error for the first of fields
// that obj lacks. A key holding null is present.
func requireFields(obj map[string]json.RawMessage, prefix string, fields ...string) error {
	for _, f := range fields {
		if _, ok := obj[f]; !ok {
			return missing(prefix + f)
		}
	}
	return nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// MapLegislator converts one object of a role listing into a Legislator.
// Required fields must be present; null values map to "".
func MapLegislator(payload json.RawMessage) (Legislator, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(payload, &obj); err != nil {
		return Legislator{}, newError(KindMalformedResponse, err, "could not decode role")
	}
	var r rawRole
	if err := json.Unmarshal(payload, &r); err != nil {
		return Legislator{}, newError(KindMalformedResponse, err, "could not decode role")
	}

	if err := requireFields(obj, "", "website", "startdate", "enddate", "state", "title_long", "person"); err != nil {
		return Legislator{}, err
	}
	if r.Person != nil {
		var person map[string]json.RawMessage
		if err := json.Unmarshal(obj["person"], &person); err != nil {
			return Legislator{}, newError(KindMalformedResponse, err, "could not decode person")
		}
		if err := requireFields(person, "person.", "name"); err != nil {
			return Legislator{}, err
		}
	}

	l := Legislator{
		Website:         deref(r.Website),
		StartDate:       deref(r.StartDate),
		EndDate:         deref(r.EndDate),
		State:           deref(r.State),
		Title:           deref(r.TitleLong),
		LeadershipTitle: deref(r.LeadershipTitle),
		District:        string(deref(r.District)),
	}
	if r.Person != nil {
		l.Name = deref(r.Person.Name)
	}
	return l, nil
}

// MapBill converts one object of a bill listing into a Bill.
func MapBill(payload json.RawMessage) (Bill, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(payload, &obj); err != nil {
		return Bill{}, newError(KindMalformedResponse, err, "could not decode bill")
	}
	var r rawBill
	if err := json.Unmarshal(payload, &r); err != nil {
		return Bill{}, newError(KindMalformedResponse, err, "could not decode bill")
	}

	err := requireFields(obj, "",
		"is_alive", "is_current", "title", "number",
		"current_status_description", "congress", "introduced_date")
	if err != nil {
		return Bill{}, err
	}

	return Bill{
		IsAlive:         deref(r.IsAlive),
		IsCurrent:       deref(r.IsCurrent),
		Title:           deref(r.Title),
		Number:          deref(r.Number),
		Description:     deref(r.StatusDescription),
		CongressSession: deref(r.Congress),
		IntroducedDate:  deref(r.IntroducedDate),
	}, nil
}
