package utils

import "testing"

func TestStringInSlice(t *testing.T) {
	list := []string{"Tower", "Sackson"}
	if !StringInSlice("Tower", list) {
		t.Fatal("应命中 Tower")
	}
	if StringInSlice("Imperial", list) {
		t.Fatal("不应命中 Imperial")
	}
}

func TestRemoveAtIndex(t *testing.T) {
	s := []string{"a", "b", "c"}
	got := RemoveAtIndex(s, 1)
	if len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Fatalf("移除失败: %v", got)
	}

	s2 := []string{"a", "b"}
	if got := RemoveAtIndex(s2, -1); len(got) != 2 {
		t.Fatalf("越界索引应原样返回: %v", got)
	}
	if got := RemoveAtIndex(s2, 2); len(got) != 2 {
		t.Fatalf("越界索引应原样返回: %v", got)
	}
}
