package printout

// Document is the print projection of a chart: a fixed sequence of pages
// carrying label/value sections, ready to be typeset.
type Document struct {
	Title       string `json:"title"`
	FileNo      string `json:"file_no"`
	PatientName string `json:"patient_name"`
	ClinicName  string `json:"clinic_name"`
	Pages       []Page `json:"pages"`
}

type Page struct {
	Sections []Section `json:"sections"`
}

// Section is either a row table (Rows set) or a paragraph block (Text
// set), under an optional heading.
type Section struct {
	Title string `json:"title,omitempty"`
	Rows  []Row  `json:"rows,omitempty"`
	Text  string `json:"text,omitempty"`
}

type Row struct {
	Label string `json:"label"`
	Value string `json:"value"`
}
