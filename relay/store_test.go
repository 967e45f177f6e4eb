package relay

import "testing"

func TestStoreSettings(t *testing.T) {
	st, err := OpenStore(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer st.Close()

	if got := st.GetSetting("missing"); got != "" {
		t.Errorf("missing key should read empty, got %q", got)
	}
	if err := st.SetSetting("k", "v1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := st.SetSetting("k", "v2"); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if got := st.GetSetting("k"); got != "v2" {
		t.Errorf("upsert lost, got %q", got)
	}
}

func TestStoreRoomAudit(t *testing.T) {
	st, err := OpenStore(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer st.Close()

	if err := st.RecordRoom("aa11", "first", false); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := st.RecordRoom("bb22", "second", true); err != nil {
		t.Fatalf("record: %v", err)
	}

	rooms, err := st.RecentRooms(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(rooms) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rooms))
	}
	byID := map[string]RoomRecord{rooms[0].ID: rooms[0], rooms[1].ID: rooms[1]}
	if !byID["bb22"].Locked || byID["aa11"].Locked {
		t.Error("locked flag lost in round trip")
	}
	if byID["aa11"].Name != "first" {
		t.Errorf("name lost: %+v", byID["aa11"])
	}
}
