package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/tidewater-labs/staffdir/internal/roster/domain"
	"github.com/tidewater-labs/staffdir/internal/roster/service"
	"github.com/tidewater-labs/staffdir/internal/roster/store"
)

// Shell is the interactive terminal front end for the roster. Input and
// output are injected so sessions can be scripted in tests.
type Shell struct {
	roster *service.RosterService
	in     io.Reader
	out    io.Writer

	lines chan string
}

func New(roster *service.RosterService, in io.Reader, out io.Writer) *Shell {
	return &Shell{roster: roster, in: in, out: out}
}

// Run reads commands until quit, EOF, or context cancellation. A reader
// goroutine feeds lines into a channel so a pending read does not block
// shutdown on a cancelled context.
func (s *Shell) Run(ctx context.Context) error {
	s.lines = make(chan string)
	go func() {
		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			select {
			case s.lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		close(s.lines)
	}()

	s.printf("staffdir — employee roster (type 'help' for commands)\n")
	for {
		s.printf("> ")
		line, ok := s.readLine(ctx)
		if !ok {
			s.printf("\n")
			return nil
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		cmd, args := strings.ToLower(fields[0]), fields[1:]

		switch cmd {
		case "list":
			s.cmdList(ctx)
		case "add":
			s.cmdAdd(ctx)
		case "update":
			s.cmdUpdate(ctx, args)
		case "delete", "del":
			s.cmdDelete(ctx, args)
		case "search":
			s.cmdSearch(ctx)
		case "departments", "depts":
			s.cmdDepartments(ctx)
		case "help":
			s.printHelp()
		case "quit", "exit":
			return nil
		default:
			s.printf("unknown command %q (type 'help')\n", cmd)
		}
	}
}

func (s *Shell) cmdList(ctx context.Context) {
	employees, err := s.roster.List(ctx)
	if err != nil {
		s.printf("error: %v\n", err)
		return
	}
	s.printTable(employees)
}

func (s *Shell) cmdAdd(ctx context.Context) {
	if departments, err := s.roster.Departments(ctx); err == nil {
		s.printf("departments: %s\n", strings.Join(departments, ", "))
	}

	var (
		e  domain.Employee
		ok bool
	)
	if e.ID, ok = s.prompt(ctx, "id", ""); !ok {
		return
	}
	if e.Name, ok = s.prompt(ctx, "name", ""); !ok {
		return
	}
	if e.Department, ok = s.prompt(ctx, "department", ""); !ok {
		return
	}
	if e.Role, ok = s.prompt(ctx, "role", ""); !ok {
		return
	}

	if err := s.roster.Add(ctx, e); err != nil {
		s.printf("error: %s\n", userMessage(err))
		return
	}
	s.printf("employee %s added\n", strings.TrimSpace(e.ID))
}

func (s *Shell) cmdUpdate(ctx context.Context, args []string) {
	if len(args) != 1 {
		s.printf("usage: update <id>\n")
		return
	}
	id := args[0]

	found, err := s.roster.Search(ctx, service.SearchQuery{ID: id})
	if err != nil {
		s.printf("error: %v\n", err)
		return
	}
	if len(found) == 0 {
		s.printf("error: %s\n", userMessage(store.ErrNotFound))
		return
	}
	current := found[0]

	s.printf("updating %s (blank keeps the current value)\n", id)
	var (
		next domain.Employee
		ok   bool
	)
	if next.ID, ok = s.prompt(ctx, "id", current.ID); !ok {
		return
	}
	if next.Name, ok = s.prompt(ctx, "name", current.Name); !ok {
		return
	}
	if next.Department, ok = s.prompt(ctx, "department", current.Department); !ok {
		return
	}
	if next.Role, ok = s.prompt(ctx, "role", current.Role); !ok {
		return
	}

	yes, ok := s.confirm(ctx, "apply update?")
	if !ok {
		return
	}
	if !yes {
		s.printf("cancelled\n")
		return
	}

	if err := s.roster.Update(ctx, id, next); err != nil {
		s.printf("error: %s\n", userMessage(err))
		return
	}
	s.printf("employee %s updated\n", id)
}

func (s *Shell) cmdDelete(ctx context.Context, args []string) {
	if len(args) != 1 {
		s.printf("usage: delete <id>\n")
		return
	}
	id := args[0]

	yes, ok := s.confirm(ctx, fmt.Sprintf("delete employee %s?", id))
	if !ok {
		return
	}
	if !yes {
		s.printf("cancelled\n")
		return
	}

	if err := s.roster.Delete(ctx, id); err != nil {
		s.printf("error: %s\n", userMessage(err))
		return
	}
	s.printf("employee %s deleted\n", id)
}

func (s *Shell) cmdSearch(ctx context.Context) {
	s.printf("blank criteria match everything\n")
	var (
		q  service.SearchQuery
		ok bool
	)
	if q.ID, ok = s.prompt(ctx, "id", ""); !ok {
		return
	}
	if q.Name, ok = s.prompt(ctx, "name", ""); !ok {
		return
	}
	if q.Department, ok = s.prompt(ctx, "department", ""); !ok {
		return
	}
	if q.Role, ok = s.prompt(ctx, "role", ""); !ok {
		return
	}

	results, err := s.roster.Search(ctx, q)
	if err != nil {
		s.printf("error: %v\n", err)
		return
	}
	s.printTable(results)
}

func (s *Shell) cmdDepartments(ctx context.Context) {
	departments, err := s.roster.Departments(ctx)
	if err != nil {
		s.printf("error: %v\n", err)
		return
	}
	for _, d := range departments {
		s.printf("%s\n", d)
	}
}

func (s *Shell) printHelp() {
	s.printf(`commands:
  list          show all employees
  add           add a new employee
  update <id>   update an employee
  delete <id>   delete an employee
  search        filter employees by field
  departments   show known departments
  quit          exit
`)
}

func (s *Shell) printTable(employees []domain.Employee) {
	if len(employees) == 0 {
		s.printf("no employees found\n")
		return
	}
	w := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDEPARTMENT\tROLE")
	for _, e := range employees {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.ID, e.Name, e.Department, e.Role)
	}
	_ = w.Flush()
}

// prompt asks for one field. A blank answer keeps current, which gives the
// update command its pre-filled form behaviour.
func (s *Shell) prompt(ctx context.Context, label, current string) (string, bool) {
	if current != "" {
		s.printf("%s [%s]: ", label, current)
	} else {
		s.printf("%s: ", label)
	}
	line, ok := s.readLine(ctx)
	if !ok {
		return "", false
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return current, true
	}
	return line, true
}

// confirm asks a yes/no question, defaulting to no. The second return is
// false when input ended before an answer arrived.
func (s *Shell) confirm(ctx context.Context, question string) (bool, bool) {
	s.printf("%s [y/N]: ", question)
	line, ok := s.readLine(ctx)
	if !ok {
		return false, false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", true
}

func (s *Shell) readLine(ctx context.Context) (string, bool) {
	select {
	case line, ok := <-s.lines:
		return line, ok
	case <-ctx.Done():
		return "", false
	}
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

// userMessage maps sentinel errors to the short messages shown to the user.
func userMessage(err error) string {
	switch {
	case errors.Is(err, store.ErrDuplicateID):
		return "ID already exists"
	case errors.Is(err, store.ErrNotFound):
		return "ID not found"
	case errors.Is(err, service.ErrInvalidID):
		return "employee ID must be exactly 6 digits"
	case errors.Is(err, service.ErrMissingFields):
		return "all fields (ID, name, department, role) are required"
	default:
		return err.Error()
	}
}
