package peaks

import "slices"

// Event is one detected peak. Sample is relative to the start of the signal
// handed to the engine unless a caller shifts it.
type Event struct {
	Sample    int
	Channel   int
	Amplitude float32
}

// Compare orders events by sample, then channel.
func Compare(a, b Event) int {
	if a.Sample != b.Sample {
		if a.Sample < b.Sample {
			return -1
		}
		return 1
	}
	if a.Channel != b.Channel {
		if a.Channel < b.Channel {
			return -1
		}
		return 1
	}
	return 0
}

// Collector accumulates events in any order and hands them back sorted by
// (Sample, Channel) with duplicates removed.
type Collector struct {
	events []Event
	sorted bool
}

// Add appends one event.
func (c *Collector) Add(e Event) {
	c.events = append(c.events, e)
	c.sorted = false
}

// AddAll appends events.
func (c *Collector) AddAll(events []Event) {
	if len(events) == 0 {
		return
	}
	c.events = append(c.events, events...)
	c.sorted = false
}

// Len returns the number of events held, duplicates included until the next
// call to Events.
func (c *Collector) Len() int {
	return len(c.events)
}

// Events returns the collected events in ascending (Sample, Channel) order.
// The first of several events at the same position wins. The returned slice
// aliases the collector's storage until the next Add or Reset.
func (c *Collector) Events() []Event {
	if c.events == nil {
		return []Event{}
	}
	if !c.sorted {
		slices.SortStableFunc(c.events, Compare)
		c.events = slices.CompactFunc(c.events, func(a, b Event) bool {
			return Compare(a, b) == 0
		})
		c.sorted = true
	}
	return c.events
}

// Reset drops all events, keeping the allocated storage.
func (c *Collector) Reset() {
	c.events = c.events[:0]
	c.sorted = true
}
