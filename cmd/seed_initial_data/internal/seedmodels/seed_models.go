package seedmodels

// SeedAccount is an account created when the database is first seeded.
type SeedAccount struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Email    string `yaml:"email"`
	IsAdmin  bool   `yaml:"is_admin"`
}

// SeedQuestionFile points at a question bank file. An empty Category is
// derived from the file name.
type SeedQuestionFile struct {
	Path       string `yaml:"path"`
	Category   string `yaml:"category"`
	Difficulty int    `yaml:"difficulty"`
}

// SeedManifest is the root of configs/seed_data/seed.yaml.
type SeedManifest struct {
	Users     []SeedAccount      `yaml:"users"`
	Questions []SeedQuestionFile `yaml:"questions"`
}
