package protocol

import (
	"errors"
	"reflect"
	"testing"
)

func TestName(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want string
	}{
		{"simple", Command{"GET", "key"}, "GET"},
		{"lowercase", Command{"set", "key", "value"}, "SET"},
		{"script subcommand", Command{"SCRIPT", "LOAD", "return 1"}, "SCRIPT LOAD"},
		{"script alone", Command{"SCRIPT"}, "SCRIPT"},
		{"pubsub subcommand", Command{"PUBSUB", "NUMSUB", "ch"}, "PUBSUB NUMSUB"},
		{"xgroup subcommand", Command{"XGROUP", "destroy", "s", "g"}, "XGROUP DESTROY"},
		{"empty", Command{}, ""},
		{"non-string first token", Command{42}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Name(tt.cmd); got != tt.want {
				t.Errorf("Name(%v) = %q, want %q", tt.cmd, got, tt.want)
			}
		})
	}
}

func TestSerialize(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want []any
	}{
		{
			"strings pass through",
			Command{"SET", "key", "value"},
			[]any{"SET", "key", "value"},
		},
		{
			"numbers pass through",
			Command{"EXPIRE", "key", 100},
			[]any{"EXPIRE", "key", 100},
		},
		{
			"floats pass through",
			Command{"ZADD", "key", 1.5, "member"},
			[]any{"ZADD", "key", 1.5, "member"},
		},
		{
			"int64 passes through",
			Command{"SETRANGE", "key", int64(5), "x"},
			[]any{"SETRANGE", "key", int64(5), "x"},
		},
		{
			"bool becomes json text",
			Command{"JSON.SET", "key", "$", true},
			[]any{"JSON.SET", "key", "$", "true"},
		},
		{
			"map becomes json text",
			Command{"JSON.SET", "key", "$", map[string]any{"a": 1}},
			[]any{"JSON.SET", "key", "$", `{"a":1}`},
		},
		{
			"slice becomes json text",
			Command{"JSON.SET", "key", "$", []int{1, 2, 3}},
			[]any{"JSON.SET", "key", "$", `[1,2,3]`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Serialize(tt.cmd)
			if err != nil {
				t.Fatalf("Serialize(%v) failed: %v", tt.cmd, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Serialize(%v) = %v, want %v", tt.cmd, got, tt.want)
			}
		})
	}
}

func TestSerialize_Unrepresentable(t *testing.T) {
	_, err := Serialize(Command{"SET", "key", make(chan int)})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var se *SerializeError
	if !errors.As(err, &se) {
		t.Fatalf("error = %T, want *SerializeError", err)
	}
	if se.Index != 2 {
		t.Errorf("Index = %d, want 2", se.Index)
	}
}

func BenchmarkSerialize(b *testing.B) {
	cmd := Command{"HSET", "user:1000", "name", "alice", "visits", 42, "score", 98.5, "active", true}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Serialize(cmd); err != nil {
			b.Fatal(err)
		}
	}
}
