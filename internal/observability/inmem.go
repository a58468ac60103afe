package observability

import "sync"

// Observation is one recorded event. Only the fields relevant to Kind are set.
type Observation struct {
	Kind   string  `json:"kind"`
	Source string  `json:"source,omitempty"`
	Reason string  `json:"reason,omitempty"`
	Method string  `json:"method,omitempty"`
	Route  string  `json:"route,omitempty"`
	Status int     `json:"status,omitempty"`
	Price  float64 `json:"price,omitempty"`
	DurMs  float64 `json:"dur_ms,omitempty"`
	OK     bool    `json:"ok,omitempty"`
}

type Totals struct {
	Orders     int `json:"orders"`
	Rejected   int `json:"rejected"`
	Duplicates int `json:"duplicates"`
}

type Snapshot struct {
	Totals Totals        `json:"totals"`
	Last   []Observation `json:"last"`
}

// Inmem keeps the last max observations and running totals.
type Inmem struct {
	mu     sync.Mutex
	last   []Observation
	max    int
	totals Totals
}

func NewInmem(max int) *Inmem {
	return &Inmem{
		max: max,
	}
}

func (m *Inmem) push(v Observation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = append(m.last, v)
	if len(m.last) > m.max {
		m.last = m.last[len(m.last)-m.max:]
	}
}

func (m *Inmem) ObserveOrder(source string, price float64) {
	m.mu.Lock()
	m.totals.Orders++
	m.mu.Unlock()
	m.push(Observation{Kind: "order", Source: source, Price: price})
}

func (m *Inmem) ObserveRejected(source string, kind string) {
	m.mu.Lock()
	m.totals.Rejected++
	m.mu.Unlock()
	m.push(Observation{Kind: "rejected", Source: source, Reason: kind})
}

func (m *Inmem) ObserveHTTP(method, route string, status int, durMs float64) {
	m.push(Observation{Kind: "http", Method: method, Route: route, Status: status, DurMs: durMs})
}

func (m *Inmem) ObserveKafka(processMs float64, ok bool) {
	m.push(Observation{Kind: "kafka", DurMs: processMs, OK: ok})
}

func (m *Inmem) IncDuplicate() {
	m.mu.Lock()
	m.totals.Duplicates++
	m.mu.Unlock()
}

// Snapshot copies the current state; the caller may keep it.
func (m *Inmem) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	last := make([]Observation, len(m.last))
	copy(last, m.last)
	return Snapshot{Totals: m.totals, Last: last}
}
