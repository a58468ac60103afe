package observability

// Metrics receives one observation per domain event, HTTP request and
// consumed Kafka message.
type Metrics interface {
	ObserveOrder(source string, price float64)
	ObserveRejected(source string, kind string)
	ObserveHTTP(method, route string, status int, durMs float64)
	ObserveKafka(processMs float64, ok bool)
	IncDuplicate()
}

type Noop struct{}

func NewNoop() Noop { return Noop{} }

func (Noop) ObserveOrder(string, float64)             {}
func (Noop) ObserveRejected(string, string)           {}
func (Noop) ObserveHTTP(string, string, int, float64) {}
func (Noop) ObserveKafka(float64, bool)               {}
func (Noop) IncDuplicate()                            {}
