package registry

import (
	"reflect"
	"testing"
)

var filterRows = []Row{
	{ID: 1, PlateNumber: "AB123CD", CallSign: "falcon"},
	{ID: 2, PlateNumber: "XY987ZW", CallSign: "Falcon"},
	{ID: 3, PlateNumber: "QQ555QQ", CallSign: "osprey"},
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name  string
		term  string
		scope Scope
		want  []int64
	}{
		{"empty term keeps order", "", ScopeAll, []int64{1, 2, 3}},
		{"whitespace term keeps order", "   ", ScopePlate, []int64{1, 2, 3}},
		{"plate scope case-insensitive", "ab1", ScopePlate, []int64{1}},
		{"call sign scope matches both cases", "FALCON", ScopeCallSign, []int64{1, 2}},
		{"all scope matches plate", "987", ScopeAll, []int64{2}},
		{"all scope matches id", "3", ScopeAll, []int64{1, 3}},
		{"absent term matches nothing", "zzz", ScopeAll, nil},
		{"plate scope misses call sign", "falcon", ScopePlate, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(filterRows, tt.term, tt.scope)
			var ids []int64
			for _, r := range got {
				ids = append(ids, r.ID)
			}
			if !reflect.DeepEqual(ids, tt.want) {
				t.Fatalf("Filter(%q, %v) ids = %v, want %v", tt.term, tt.scope, ids, tt.want)
			}
		})
	}
}

func TestScopeCycle(t *testing.T) {
	order := []Scope{ScopeAll, ScopePlate, ScopeCallSign, ScopeAll}
	for i := 0; i < len(order)-1; i++ {
		if next := order[i].Next(); next != order[i+1] {
			t.Fatalf("%v.Next() = %v, want %v", order[i], next, order[i+1])
		}
	}
}

func TestScopeString(t *testing.T) {
	if ScopeAll.String() != "All Columns" {
		t.Fatalf("ScopeAll.String() = %q", ScopeAll.String())
	}
	if ScopePlate.String() != ColumnPlate {
		t.Fatalf("ScopePlate.String() = %q, want %q", ScopePlate.String(), ColumnPlate)
	}
	if ScopeCallSign.String() != ColumnCallSign {
		t.Fatalf("ScopeCallSign.String() = %q, want %q", ScopeCallSign.String(), ColumnCallSign)
	}
}
