package entity

// DoctorFilter narrows doctor queries. A nil field means "no constraint".
type DoctorFilter struct {
	IsActive *bool
}

// ActiveOnly is the filter used by every public view.
func ActiveOnly() DoctorFilter {
	active := true
	return DoctorFilter{IsActive: &active}
}

// Matches reports whether the doctor passes the filter.
func (f DoctorFilter) Matches(d *Doctor) bool {
	if f.IsActive != nil && d.IsActive != *f.IsActive {
		return false
	}
	return true
}
