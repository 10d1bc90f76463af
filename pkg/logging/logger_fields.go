package logging

import (
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Network entity fields

func Component(name string) Field {
	return String("component", name)
}

func Network(name string) Field {
	return String("network", name)
}

// NodeID and EdgeID keep ids as uint64 so JSON output never rounds them.
func NodeID(id uint64) Field {
	return Field{Key: "node_id", Value: id}
}

func NodeName(name string) Field {
	return String("node_name", name)
}

func EdgeID(id uint64) Field {
	return Field{Key: "edge_id", Value: id}
}

func Operation(op string) Field {
	return String("operation", op)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}

func Count(n int) Field {
	return Field{Key: "count", Value: n}
}

func Path(p string) Field {
	return String("path", p)
}
