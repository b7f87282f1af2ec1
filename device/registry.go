package device

import "fmt"

// registry is the injective string/image identifier allocator backing
// Device.Define and Device.Integrate: ids are drawn from a monotonically
// decreasing sequence below floor, stable for the lifetime of the
// device once assigned.
type registry struct {
	floor int32
	next  int32

	byValue map[string]int32
	byID    map[int32]string
}

func newRegistry(floor int32) *registry {
	return &registry{
		floor:   floor,
		next:    floor,
		byValue: make(map[string]int32),
		byID:    make(map[int32]string),
	}
}

// intern returns the existing id for value if already registered,
// otherwise allocates and returns a new one.
func (r *registry) intern(value string) int32 {
	if id, ok := r.byValue[value]; ok {
		return id
	}

	id := r.next
	r.next--

	r.byValue[value] = id
	r.byID[id] = value
	return id
}

func (r *registry) lookup(id int32) (string, bool) {
	v, ok := r.byID[id]
	return v, ok
}

func (r *registry) String() string {
	return fmt.Sprintf("registry{floor=%d, next=%d, entries=%d}", r.floor, r.next, len(r.byID))
}
