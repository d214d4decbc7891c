package form

// Responses maps field names to their answers: string for text fields, int or
// float64 for number fields and bool for yes/no fields.
type Responses map[string]any

// String returns a text answer.
func (r Responses) String(name string) (string, bool) {
	v, ok := r[name].(string)
	return v, ok
}

// Int returns an answer from an Int number field.
func (r Responses) Int(name string) (int, bool) {
	v, ok := r[name].(int)
	return v, ok
}

// Float returns an answer from a number field. Int answers are converted.
func (r Responses) Float(name string) (float64, bool) {
	switch v := r[name].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

// Bool returns a yes/no answer.
func (r Responses) Bool(name string) (bool, bool) {
	v, ok := r[name].(bool)
	return v, ok
}
