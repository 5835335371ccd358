package view

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"inventory-backend/internal/models"
)

const shellHelp = `commands:
  show                                  print the (filtered) table
  filter [text]                         filter by name, empty clears
  create name=.. category=.. price=.. [instock=..] [productid=..]
  update <id> key=value ...             change fields of a loaded record
  delete <id>
  reload                                fetch the list again
  quit
`

// RunShell loads the inventory once and then executes one command per input
// line until quit or end of input.
func RunShell(ctx context.Context, inv *Inventory, in io.Reader, out io.Writer) error {
	if err := inv.Load(ctx); err != nil {
		fmt.Fprintf(out, "could not load products: %v\n", err)
	} else if err := inv.Render(out); err != nil {
		return err
	}

	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		quit, err := execLine(ctx, inv, sc.Text(), out)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

func execLine(ctx context.Context, inv *Inventory, line string, out io.Writer) (bool, error) {
	cmd, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "":
		return false, nil
	case "quit", "exit":
		return true, nil
	case "help":
		fmt.Fprint(out, shellHelp)
	case "show", "list":
		return false, inv.Render(out)
	case "filter":
		inv.Filter(unquote(rest))
		return false, inv.Render(out)
	case "reload":
		if err := inv.Load(ctx); err != nil {
			return false, err
		}
		return false, inv.Render(out)
	case "create":
		fields, err := splitArgs(rest)
		if err != nil {
			return false, err
		}
		input, err := ApplyAssignments(&models.ProductInput{}, fields)
		if err != nil {
			return false, err
		}
		rec, err := inv.Save(ctx, input)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(out, "created %d\n", rec.ID)
	case "update":
		args, err := splitArgs(rest)
		if err != nil {
			return false, err
		}
		if len(args) == 0 {
			return false, fmt.Errorf("usage: update <id> key=value ...")
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return false, fmt.Errorf("invalid id %q", args[0])
		}
		cur, ok := inv.State().Products[id]
		if !ok {
			return false, fmt.Errorf("product %d is not loaded", id)
		}
		input, err := ApplyAssignments(models.InputFromProduct(cur.Product), args[1:])
		if err != nil {
			return false, err
		}
		if _, err := inv.Edit(ctx, id, input); err != nil {
			return false, err
		}
		fmt.Fprintf(out, "updated %d\n", id)
	case "delete":
		id, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return false, fmt.Errorf("invalid id %q", rest)
		}
		if err := inv.Destroy(ctx, id); err != nil {
			return false, err
		}
		fmt.Fprintf(out, "deleted %d\n", id)
	default:
		return false, fmt.Errorf("unknown command %q, try help", cmd)
	}
	return false, nil
}

// ApplyAssignments sets key=value pairs on in and returns it.
func ApplyAssignments(in *models.ProductInput, assignments []string) (*models.ProductInput, error) {
	for _, a := range assignments {
		key, val, ok := strings.Cut(a, "=")
		if !ok {
			return nil, fmt.Errorf("expected key=value, got %q", a)
		}
		switch strings.ToLower(key) {
		case "name":
			in.Name = &val
		case "category":
			in.Category = &val
		case "price":
			p, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid price %q", val)
			}
			in.Price = &p
		case "instock":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return nil, fmt.Errorf("invalid instock %q", val)
			}
			in.InStock = &b
		case "productid":
			n, err := strconv.ParseInt(val, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid productid %q", val)
			}
			in.ProductID = &n
		default:
			return nil, fmt.Errorf("unknown field %q", key)
		}
	}
	return in, nil
}

// splitArgs splits on spaces outside double quotes and drops the quotes,
// so name="Hammer XL" stays one argument.
func splitArgs(s string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		inQuote bool
		started bool
	)
	for _, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
			started = true
		case r == ' ' && !inQuote:
			if started {
				args = append(args, cur.String())
				cur.Reset()
				started = false
			}
		default:
			cur.WriteRune(r)
			started = true
		}
	}
	if inQuote {
		return nil, fmt.Errorf("unterminated quote")
	}
	if started {
		args = append(args, cur.String())
	}
	return args, nil
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
