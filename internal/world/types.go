package world

import "time"

// Document is the root world-state document. It is persisted as one
// JSON object; the wire keys match the stored keys exactly.
type Document struct {
	GateOpen     bool              `json:"gateOpen"`
	Monsters     []Monster         `json:"monsters"`
	EnergySpikes []EnergySpike     `json:"energySpikes"`
	Inventory    []InventoryItem   `json:"inventory"`
	Experiments  []Experiment      `json:"experiments"`
	Evidence     []Evidence        `json:"evidence"`
	RequestLogs  []RequestLogEntry `json:"requestLogs"`
}

// Monster is a creature with clamped health (never below zero).
type Monster struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Health int    `json:"health"`
}

// EnergySpike is a static point of interest with a geographic position
// and an energy reading. Spikes are seed data, read-only via the API.
type EnergySpike struct {
	ID          int        `json:"id"`
	Location    string     `json:"location"`
	Coordinates [2]float64 `json:"coordinates"`
	Zone        string     `json:"zone"`
	Energy      int        `json:"energy"`
}

// InventoryItem is a consumable supply. Quantity never goes negative;
// using an item at zero quantity fails with ErrOutOfStock.
type InventoryItem struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Quantity int    `json:"quantity"`
}

// Subject is the nested subject record of an experiment. Vitals and
// powers are free-form object arrays; their element shape is not
// validated beyond being arrays.
type Subject struct {
	Name   string  `json:"name"`
	Age    float64 `json:"age"`
	Vitals []any   `json:"vitals,omitempty"`
	Powers []any   `json:"powers,omitempty"`
}

// Experiment is a lab experiment record. IDs are sequential
// (len(experiments)+1); experiments are never deleted so IDs are never
// reused.
type Experiment struct {
	ID             int       `json:"id"`
	ExperimentName string    `json:"experimentName"`
	Subject        Subject   `json:"subject"`
	LabNotes       string    `json:"labNotes"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Evidence is an uploaded evidence record. Same sequential ID rule as
// experiments.
type Evidence struct {
	ID          int       `json:"id"`
	Filename    string    `json:"filename"`
	Mimetype    string    `json:"mimetype"`
	Size        int64     `json:"size"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	UploadedAt  time.Time `json:"uploadedAt"`
	LabID       string    `json:"labId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// RequestLogEntry is one captured HTTP request, newest-first in
// Document.RequestLogs.
type RequestLogEntry struct {
	Method      string            `json:"method"`
	Path        string            `json:"path"`
	Query       map[string]string `json:"query"`
	Body        any               `json:"body,omitempty"`
	IP          string            `json:"ip"`
	Headers     map[string]string `json:"headers"`
	Cookies     map[string]string `json:"cookies"`
	QueryParams map[string]string `json:"queryParams"`
	PathParams  map[string]string `json:"pathParams"`
	StatusCode  int               `json:"statusCode"`
	Timestamp   time.Time         `json:"timestamp"`
}

// Seed returns the initial world state written when no document exists
// yet: gate closed, one monster, four energy spikes, four inventory
// items, empty collections.
func Seed() *Document {
	return &Document{
		GateOpen: false,
		Monsters: []Monster{
			{ID: 1, Name: "Demogorgon", Health: 100},
		},
		EnergySpikes: []EnergySpike{
			{ID: 1, Location: "Hawkins Lab", Coordinates: [2]float64{39.8283, -86.1754}, Zone: "lab", Energy: 85},
			{ID: 2, Location: "Byers House", Coordinates: [2]float64{39.8300, -86.1800}, Zone: "residential", Energy: 45},
			{ID: 3, Location: "Forest", Coordinates: [2]float64{39.8350, -86.1900}, Zone: "forest", Energy: 60},
			{ID: 4, Location: "School", Coordinates: [2]float64{39.8200, -86.1700}, Zone: "school", Energy: 30},
		},
		Inventory: []InventoryItem{
			{ID: 1, Name: "Flashlight", Type: "tool", Quantity: 5},
			{ID: 2, Name: "Radio", Type: "communication", Quantity: 3},
			{ID: 3, Name: "First Aid Kit", Type: "medical", Quantity: 2},
			{ID: 4, Name: "Energy Detector", Type: "equipment", Quantity: 1},
		},
		Experiments: []Experiment{},
		Evidence:    []Evidence{},
		RequestLogs: []RequestLogEntry{},
	}
}
