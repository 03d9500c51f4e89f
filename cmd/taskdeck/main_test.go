package main

import (
	"reflect"
	"testing"
)

func TestIsTaskID(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want bool
	}{
		{"17", true},
		{" 17 ", true},
		{"1", true},
		{"0", false},
		{"-3", false},
		{"17x", false},
		{"tasks", false},
		{"", false},
	} {
		if got := isTaskID(tt.in); got != tt.want {
			t.Errorf("isTaskID(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRewriteDirectTaskLookupArgs(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "bare invocation untouched",
			in:   []string{"taskdeck"},
			want: []string{"taskdeck"},
		},
		{
			name: "direct task id",
			in:   []string{"taskdeck", "17"},
			want: []string{"taskdeck", "tasks", "show", "17"},
		},
		{
			name: "direct task id after value flag",
			in:   []string{"taskdeck", "--api", "http://localhost:5020/api", "17"},
			want: []string{"taskdeck", "--api", "http://localhost:5020/api", "tasks", "show", "17"},
		},
		{
			name: "direct task id after equals flag",
			in:   []string{"taskdeck", "--api=http://localhost:5020/api", "17"},
			want: []string{"taskdeck", "--api=http://localhost:5020/api", "tasks", "show", "17"},
		},
		{
			name: "direct task id after bool flag",
			in:   []string{"taskdeck", "--pretty", "17"},
			want: []string{"taskdeck", "--pretty", "tasks", "show", "17"},
		},
		{
			name: "direct task id after double dash",
			in:   []string{"taskdeck", "--format", "json", "--", "17"},
			want: []string{"taskdeck", "--format", "json", "--", "tasks", "show", "17"},
		},
		{
			name: "normal subcommand not rewritten",
			in:   []string{"taskdeck", "tasks", "show", "17"},
			want: []string{"taskdeck", "tasks", "show", "17"},
		},
		{
			name: "unknown command not rewritten",
			in:   []string{"taskdeck", "wat"},
			want: []string{"taskdeck", "wat"},
		},
		{
			name: "zero is not a task id",
			in:   []string{"taskdeck", "0"},
			want: []string{"taskdeck", "0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rewriteDirectTaskLookupArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}
