package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Value is one node of a script document tree: either a number or a
// sequence of values. The stringifier below is a plain tree walk and knows
// nothing about the geometry types feeding it.
type Value interface {
	value()
}

// Num is a numeric leaf.
type Num float64

// Seq is an ordered sequence of values.
type Seq []Value

func (Num) value() {}
func (Seq) value() {}

// Render stringifies a value tree: numbers in shortest-round-trip form,
// sequences bracketed and comma separated.
func Render(v Value) string {
	var sb strings.Builder
	renderInto(&sb, v)
	return sb.String()
}

func renderInto(sb *strings.Builder, v Value) {
	switch n := v.(type) {
	case Num:
		sb.WriteString(strconv.FormatFloat(float64(n), 'g', -1, 64))
	case Seq:
		sb.WriteByte('[')
		for i, e := range n {
			if i > 0 {
				sb.WriteByte(',')
			}
			renderInto(sb, e)
		}
		sb.WriteByte(']')
	}
}

// PointSeq converts 2D points to a nested sequence [[x,y],...].
func PointSeq(pts []v2.Vec) Seq {
	out := make(Seq, len(pts))
	for i, p := range pts {
		out[i] = Seq{Num(p.X), Num(p.Y)}
	}
	return out
}

// Command is one scripted operation: a name applied to a value tree.
type Command struct {
	Name string
	Args Value
}

// Script is an ordered parametric-solid program.
type Script struct {
	Commands []Command
}

// Add appends a command.
func (s *Script) Add(name string, args Value) {
	s.Commands = append(s.Commands, Command{Name: name, Args: args})
}

// WriteScript writes the script one command per line, name(args).
func WriteScript(w io.Writer, s *Script) error {
	bw := bufio.NewWriter(w)
	for _, c := range s.Commands {
		fmt.Fprintf(bw, "%s(%s)\n", c.Name, Render(c.Args))
	}
	return bw.Flush()
}
