package entity

type PredefinedCategory struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// PredefinedCategories seeds every summary and the predefined category endpoint.
// Changing it is a deployment decision.
var PredefinedCategories = []PredefinedCategory{
	{ID: "cat001", Name: "Food", Icon: "restaurant", Color: "orange"},
	{ID: "cat002", Name: "Transport", Icon: "directions_car", Color: "blue"},
	{ID: "cat003", Name: "Entertainment", Icon: "movie", Color: "purple"},
	{ID: "cat004", Name: "Shopping", Icon: "shopping_bag", Color: "pink"},
	{ID: "cat005", Name: "Health", Icon: "local_hospital", Color: "red"},
	{ID: "cat006", Name: "Education", Icon: "school", Color: "green"},
	{ID: "cat007", Name: "Services", Icon: "build", Color: "brown"},
	{ID: "cat008", Name: "Other", Icon: "attach_money", Color: "deepPurple"},
}

func PredefinedCategoryNames() []string {
	names := make([]string, 0, len(PredefinedCategories))
	for _, c := range PredefinedCategories {
		names = append(names, c.Name)
	}
	return names
}
