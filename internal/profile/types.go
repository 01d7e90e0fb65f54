// Package profile turns loosely-typed extraction payloads into strictly shaped
// candidate profiles.
package profile

// Profile is the validated candidate profile. Lists are never nil.
type Profile struct {
	Name                   string           `json:"name"`
	Emails                 []string         `json:"emails"`
	Phones                 []string         `json:"phones"`
	Links                  []string         `json:"links"`
	Location               string           `json:"location"`
	Biography              string           `json:"biography"`
	TotalWorkExperience    string           `json:"totalWorkExperience"`
	TotalEducationDuration string           `json:"totalEducationDuration"`
	WorkExperience         []WorkExperience `json:"workExperience" validate:"dive"`
	Education              []Education      `json:"education" validate:"dive"`
	Skills                 []string         `json:"skills"`
	Languages              []Language       `json:"languages" validate:"dive"`
	Publications           []Publication    `json:"publications"`
	Projects               []Project        `json:"projects"`
}

type WorkExperience struct {
	JobTitle    string `json:"jobTitle"`
	Company     string `json:"company"`
	Period      string `json:"period"`
	PeriodStart string `json:"periodStart" validate:"omitempty,datetime=02-01-2006"`
	PeriodEnd   string `json:"periodEnd" validate:"omitempty,datetime=02-01-2006"`
	TotalLength string `json:"totalLength"`
	Description string `json:"description"`
}

type Education struct {
	Degree                 string `json:"degree"`
	EducationalInstitution string `json:"educationalInstitution"`
	Period                 string `json:"period"`
	PeriodStart            string `json:"periodStart" validate:"omitempty,datetime=02-01-2006"`
	PeriodEnd              string `json:"periodEnd" validate:"omitempty,datetime=02-01-2006"`
	TotalLength            string `json:"totalLength"`
	Description            string `json:"description"`
}

type Language struct {
	Name   string `json:"name"`
	Degree string `json:"degree" validate:"omitempty,oneof=Beginner Good Fluent Proficient Native/Bilingual"`
}

type Publication struct {
	Date        string   `json:"date"`
	Description string   `json:"description"`
	Name        string   `json:"name"`
	PeriodEnd   string   `json:"periodEnd"`
	PeriodStart string   `json:"periodStart"`
	Publisher   string   `json:"publisher"`
	Tags        []string `json:"tags"`
	URL         string   `json:"url"`
}

type Project struct {
	Date        string   `json:"date"`
	Description string   `json:"description"`
	Name        string   `json:"name"`
	PeriodEnd   string   `json:"periodEnd"`
	PeriodStart string   `json:"periodStart"`
	Skills      []string `json:"skills"`
	URL         string   `json:"url"`
}

// Entry is a dated profile record that takes part in duration math.
type Entry interface {
	Title() string
	Organization() string
	DisplayPeriod() string
	// Range returns the raw start and end dates, each DD-MM-YYYY or empty.
	Range() (start, end string)
	// Fallback is the upstream free-text length shown when nothing can be computed.
	Fallback() string
	Details() string
}

func (w WorkExperience) Title() string           { return w.JobTitle }
func (w WorkExperience) Organization() string    { return w.Company }
func (w WorkExperience) DisplayPeriod() string   { return w.Period }
func (w WorkExperience) Range() (string, string) { return w.PeriodStart, w.PeriodEnd }
func (w WorkExperience) Fallback() string        { return w.TotalLength }
func (w WorkExperience) Details() string         { return w.Description }

func (e Education) Title() string           { return e.Degree }
func (e Education) Organization() string    { return e.EducationalInstitution }
func (e Education) DisplayPeriod() string   { return e.Period }
func (e Education) Range() (string, string) { return e.PeriodStart, e.PeriodEnd }
func (e Education) Fallback() string        { return e.TotalLength }
func (e Education) Details() string         { return e.Description }

// WorkEntries returns the work history as entries, in profile order.
func (p *Profile) WorkEntries() []Entry {
	entries := make([]Entry, 0, len(p.WorkExperience))
	for _, w := range p.WorkExperience {
		entries = append(entries, w)
	}
	return entries
}

// EducationEntries returns the education history as entries, in profile order.
func (p *Profile) EducationEntries() []Entry {
	entries := make([]Entry, 0, len(p.Education))
	for _, e := range p.Education {
		entries = append(entries, e)
	}
	return entries
}
