package value

// ContactNumber is a messaging destination in international format without
// the leading plus, e.g. 254745771747. It is used verbatim in deep links.
type ContactNumber string

func (c ContactNumber) String() string {
	return string(c)
}
