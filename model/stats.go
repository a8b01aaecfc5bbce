package model

type SystemStats struct {
	TotalUsers           int64                     `json:"totalUsers"`
	TotalBuilders        int64                     `json:"totalBuilders"`
	TotalProjects        int64                     `json:"totalProjects"`
	TotalBuildings       int64                     `json:"totalBuildings"`
	ActiveUsersOnline    int64                     `json:"activeUsersOnline"`
	VerifiedUsersCount   int64                     `json:"verifiedUsersCount"`
	PendingVerifications int64                     `json:"pendingVerifications"`
	ApartmentsByStatus   map[ApartmentStatus]int64 `json:"apartmentsByStatus"`
}
