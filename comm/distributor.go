package comm

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Item is one unit of data moved by a Distributor round: a GlobalOrdinal
// plus an optional opaque payload (node coordinates, an element's
// connectivity row, or nothing at all for an ID-only shipping round).
type Item struct {
	ID      int
	Payload []byte
}

// Plan maps a GlobalOrdinal to the set of destination ranks it must be sent
// to. A single id may appear with more than one destination (an element
// shipped to every rank that owns one of its nodes). The import planner
// sends each item's coordinates or connectivity as its payload in the same
// round that ships its ID, so one Plan per item set serves both.
type Plan map[int][]int

// Distributor performs one all-to-all exchange of Items over a
// Communicator, grouping outgoing items into one send buffer per
// destination rank before the exchange and splitting the received buffer
// back into Items afterward — the same per-partition send/receive buffer
// shape as the teacher's DG3D/face_buffer RemoteBufferData, generalized
// from fixed-size float32 face data to arbitrary GlobalOrdinal/payload
// items.
type Distributor struct {
	comm Communicator
}

// New returns a Distributor built on top of comm.
func New(c Communicator) *Distributor {
	return &Distributor{comm: c}
}

// Exchange ships items to the destinations named by plan and returns every
// item this rank received from any sender, grouped by sender with the
// senders in map iteration order (not deduplicated and not globally ordered —
// the import planner's ordered-set pass is responsible for determinism and
// dedup once items arrive).
func (d *Distributor) Exchange(items []Item, plan Plan) ([]Item, error) {
	send := make(map[int][]byte)
	buffers := make(map[int]*bytes.Buffer)

	for _, it := range items {
		dests := plan[it.ID]
		for _, dst := range dests {
			buf, ok := buffers[dst]
			if !ok {
				buf = &bytes.Buffer{}
				buffers[dst] = buf
			}
			if err := writeItem(buf, it); err != nil {
				return nil, fmt.Errorf("comm: encoding item %d for rank %d: %w", it.ID, dst, err)
			}
		}
	}
	for dst, buf := range buffers {
		send[dst] = buf.Bytes()
	}

	recvBytes, err := d.comm.Exchange(send)
	if err != nil {
		return nil, fmt.Errorf("comm: all-to-all exchange failed: %w", err)
	}

	var received []Item
	for _, payload := range recvBytes {
		items, err := readItems(payload)
		if err != nil {
			return nil, fmt.Errorf("comm: decoding received items: %w", err)
		}
		received = append(received, items...)
	}
	return received, nil
}

func writeItem(buf *bytes.Buffer, it Item) error {
	if err := binary.Write(buf, binary.LittleEndian, int64(it.ID)); err != nil {
		return err
	}
	if err := binary.Write(buf, binary.LittleEndian, int32(len(it.Payload))); err != nil {
		return err
	}
	if len(it.Payload) > 0 {
		if _, err := buf.Write(it.Payload); err != nil {
			return err
		}
	}
	return nil
}

func readItems(payload []byte) ([]Item, error) {
	r := bytes.NewReader(payload)
	var items []Item
	for r.Len() > 0 {
		var id int64
		if err := binary.Read(r, binary.LittleEndian, &id); err != nil {
			return nil, err
		}
		var n int32
		if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
			return nil, err
		}
		var body []byte
		if n > 0 {
			body = make([]byte, n)
			if _, err := r.Read(body); err != nil {
				return nil, err
			}
		}
		items = append(items, Item{ID: int(id), Payload: body})
	}
	return items, nil
}

// EncodeFloat64s packs a row of float64s into a payload for Exchange.
func EncodeFloat64s(row []float64) []byte {
	buf := &bytes.Buffer{}
	for _, v := range row {
		_ = binary.Write(buf, binary.LittleEndian, v)
	}
	return buf.Bytes()
}

// DecodeFloat64s unpacks a payload produced by EncodeFloat64s.
func DecodeFloat64s(payload []byte) []float64 {
	n := len(payload) / 8
	out := make([]float64, n)
	r := bytes.NewReader(payload)
	for i := 0; i < n; i++ {
		_ = binary.Read(r, binary.LittleEndian, &out[i])
	}
	return out
}

// EncodeInts packs a row of ints (e.g. a connectivity row) into a payload.
func EncodeInts(row []int) []byte {
	buf := &bytes.Buffer{}
	for _, v := range row {
		_ = binary.Write(buf, binary.LittleEndian, int64(v))
	}
	return buf.Bytes()
}

// DecodeInts unpacks a payload produced by EncodeInts.
func DecodeInts(payload []byte) []int {
	n := len(payload) / 8
	out := make([]int, n)
	r := bytes.NewReader(payload)
	for i := 0; i < n; i++ {
		var v int64
		_ = binary.Read(r, binary.LittleEndian, &v)
		out[i] = int(v)
	}
	return out
}
