package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func Test_Status_End_To_End_Start_Then_Current(t *testing.T) {
	t.Parallel()

	c := NewCLITester(t)
	c.MustRun("new", "fix bug")

	stdout := c.MustRun("start", "0")
	if stdout != "0 in_progress" {
		t.Errorf("start output = %q, want %q", stdout, "0 in_progress")
	}

	got := c.ReadTicketFile("demo", "0")
	want := "ticket:0\nstatus:in_progress\n================\nfix bug\n\n"

	if got != want {
		t.Errorf("ticket content = %q, want %q", got, want)
	}

	if diff := cmp.Diff([]string{"0"}, listedIDs(c.MustRun("list", "--current"))); diff != "" {
		t.Errorf("list --current mismatch (-want +got):\n%s", diff)
	}
}

func Test_Status_Commands_Set_Their_Status(t *testing.T) {
	t.Parallel()

	tests := []struct {
		command string
		status  string
	}{
		{command: "open", status: "open"},
		{command: "close", status: "closed"},
		{command: "start", status: "in_progress"},
		{command: "complete", status: "complete"},
		{command: "done", status: "complete"},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			t.Parallel()

			c := NewCLITester(t)
			c.WriteTicketFile("demo", "0", "ticket:0\nstatus:in_progress\nowner:carol\nsize:s\n================\nbody\n\nmore\n\n")

			stdout, stderr, code := c.Run(tt.command, "0")
			if code != 0 {
				t.Fatalf("exit code = %d, want 0\nstderr: %s", code, stderr)
			}

			AssertContains(t, stdout, "0 "+tt.status)

			got := c.ReadTicketFile("demo", "0")
			want := "ticket:0\nstatus:" + tt.status + "\nowner:carol\nsize:s\n================\nbody\n\nmore\n\n"

			if got != want {
				t.Errorf("ticket content = %q, want %q", got, want)
			}
		})
	}
}

func Test_Status_Repeated_Is_Byte_Identical(t *testing.T) {
	t.Parallel()

	c := NewCLITester(t)
	c.MustRun("new", "x")
	c.MustRun("close", "0")
	first := c.ReadTicketFile("demo", "0")

	c.MustRun("close", "0")

	if second := c.ReadTicketFile("demo", "0"); second != first {
		t.Errorf("content changed on repeat:\nfirst:  %q\nsecond: %q", first, second)
	}
}

func Test_Status_Batch_Continues_Past_Failures(t *testing.T) {
	t.Parallel()

	c := NewCLITester(t)
	c.MustRun("new", "a")
	c.MustRun("new", "b")

	stdout, stderr, code := c.Run("close", "0", "7", "abc", "1", "0")

	if code != 0 {
		t.Errorf("exit code = %d, want 0 when some tickets were updated", code)
	}

	if stdout != "0 closed\n1 closed\n" {
		t.Errorf("stdout = %q", stdout)
	}

	AssertContains(t, stderr, "error: ticket not found: 7")
	AssertContains(t, stderr, `error: invalid ticket id: "abc"`)
	AssertContains(t, c.ReadTicketFile("demo", "1"), "status:closed\n")
}

func Test_Status_Fails_When_Nothing_Updated(t *testing.T) {
	t.Parallel()

	c := NewCLITester(t)
	stdout, stderr, code := c.Run("start", "3", "4")

	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}

	if stdout != "" {
		t.Errorf("stdout = %q, want empty", stdout)
	}

	AssertContains(t, stderr, "ticket not found: 3")
	AssertContains(t, stderr, "ticket not found: 4")
}

func Test_Status_Requires_IDs(t *testing.T) {
	t.Parallel()

	c := NewCLITester(t)
	stderr := c.MustFail("complete")

	AssertContains(t, stderr, "no ticket IDs given")
}

func Test_Status_Help_Describes_Target_Status(t *testing.T) {
	t.Parallel()

	c := NewCLITester(t)
	stdout := c.MustRun("done", "--help")

	AssertContains(t, stdout, "Usage: tickets complete <id>...")
	AssertContains(t, stdout, "setting their status to complete")
	AssertContains(t, stdout, "Aliases: done")
}
