package cmd

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	MapsBaseURL        string
	MapsAPIKey         string
	MapsTimeoutSeconds string

	ScoringMode          string
	ETAGateEnabled       string
	GeocodeFailurePolicy string
	DefaultLocationLat   string
	DefaultLocationLng   string

	ImmediatePassSchedule    string
	SubscriptionPassSchedule string
}
