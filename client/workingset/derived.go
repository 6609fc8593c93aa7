package workingset

// Stats counts the tasks in the set by state.
type Stats struct {
	Total     int
	Completed int
	Pending   int
	Overdue   int
}

// Category is a derived category row for display.
type Category struct {
	ID    string
	Name  string
	Color string
	Count int
}

var categoryPalette = []string{
	"#3B82F6",
	"#14B8A6",
	"#F97316",
	"#8B5CF6",
	"#10B981",
	"#F59E0B",
	"#EF4444",
	"#6366F1",
}

// CategoryColor maps a category name to a fixed palette entry. The
// same name always yields the same color.
func CategoryColor(name string) string {
	var hash uint32
	for _, r := range name {
		hash = hash*31 + uint32(r)
	}
	return categoryPalette[int(hash)%len(categoryPalette)]
}
