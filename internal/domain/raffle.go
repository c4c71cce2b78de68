package domain

// RaffleConfig is the singleton runtime configuration of the raffle. The
// JSON keys are the wire contract of the admin frontend and stay as the
// original API published them.
type RaffleConfig struct {
	RaffleName   string `json:"nombreRifa"`
	Description  string `json:"descripcion"`
	TicketPrice  int64  `json:"precioBoleta"`
	TotalTickets int    `json:"totalBoletas"`
	DrawDate     string `json:"fechaSorteo"`
	Prize        string `json:"premio"`
	Organizer    string `json:"organizador"`
	Phone        string `json:"telefono"`
	Logo         string `json:"logo"`
	SMTPHost     string `json:"smtpHost"`
	SMTPPort     int    `json:"smtpPort"`
	SMTPUser     string `json:"smtpUser"`
	SMTPPass     string `json:"smtpPass"`
}

// DefaultRaffleConfig returns the defaults merged under any persisted
// overrides on every read, so fields added later are always present.
func DefaultRaffleConfig() RaffleConfig {
	return RaffleConfig{
		RaffleName:   "Rifas El Gran Camión",
		Description:  "KIA Picanto 0KM 2026 - Juega el 20 de junio con la Lotería de Boyacá",
		TicketPrice:  120000,
		TotalTickets: 10000,
		DrawDate:     "2026-06-20",
		Prize:        "KIA Picanto 0KM 2026",
		Organizer:    "Inversiones Castaño S.A.S",
		Phone:        "3217706789",
		Logo:         "/img/kia.jpg",
		SMTPPort:     587,
	}
}
