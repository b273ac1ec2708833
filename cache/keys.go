package cache

// Keys is the cache-key scheme for one entity type: a key for the full
// collection, a prefix for per-record keys, and a key for the statistics
// summary. Names are fixed defaults overridable through configuration.
type Keys struct {
	All    string
	Prefix string
	Stats  string
}

// ForID formats the per-record key for id. This is the only way a per-record
// key is ever produced.
func (k Keys) ForID(id string) string {
	return k.Prefix + id
}

// CourseKeys returns the default key names for the course collection.
func CourseKeys() Keys {
	return Keys{
		All:    "all_courses",
		Prefix: "course:",
		Stats:  "course_stats",
	}
}

// StudentKeys returns the default key names for the student collection.
func StudentKeys() Keys {
	return Keys{
		All:    "all_students",
		Prefix: "student:",
		Stats:  "student_stats",
	}
}
