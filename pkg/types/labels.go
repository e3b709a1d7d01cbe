package types

var statusLabels = map[JobStatus]string{
	JobStatusOpen:       "Open",
	JobStatusAccepted:   "Accepted",
	JobStatusInProgress: "In Progress",
	JobStatusCompleted:  "Completed",
	JobStatusCancelled:  "Cancelled",
}

var categoryLabels = map[JobCategory]string{
	JobCategoryRetail:       "Retail",
	JobCategoryRestaurant:   "Restaurant",
	JobCategoryWarehouse:    "Warehouse",
	JobCategoryEvents:       "Events",
	JobCategoryHousehold:    "Household",
	JobCategoryConstruction: "Construction",
	JobCategoryDelivery:     "Delivery",
	JobCategoryOther:        "Other",
}

// Label derives the human readable form of the status. The enum stays the
// single source of truth for transition logic; display strings never feed
// back into it.
func (s JobStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Label derives the human readable form of the category.
func (c JobCategory) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}
