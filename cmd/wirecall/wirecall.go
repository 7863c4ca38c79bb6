// Copyright (C) 2026 Tessellate I/O. All Rights Reserved.

// Program wirecall is a command-line demonstration of a wirecall endpoint
// pair: a small calculator service spoken over a stream connection.
package main

import (
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/creachadair/command"
	"github.com/creachadair/flax"
	"github.com/creachadair/taskgroup"
	"github.com/tessellate-io/wirecall"
	"github.com/tessellate-io/wirecall/channel"
	"github.com/tessellate-io/wirecall/codec"
	"github.com/tessellate-io/wirecall/link"
)

var flags = struct {
	Addr string `flag:"addr,Service address (host:port or socket path)"`
}{
	Addr: "127.0.0.1:31337",
}

func main() {
	root := &command.C{
		Name: filepath.Base(os.Args[0]),
		Help: "Demonstrate wirecall endpoints speaking a calculator protocol.",

		SetFlags: command.Flags(flax.MustBind, &flags),
		Commands: []*command.C{
			{
				Name: "serve",
				Help: "Run a calculator service until interrupted.",
				Run:  runServe,
			},
			{
				Name:  "call",
				Usage: "square <n> | add <a> <b> | notify <text>",
				Help:  "Invoke one method on a running calculator service.",
				Run:   runCall,
			},
			command.VersionCommand(),
			command.HelpCommand(nil),
		},
	}
	command.RunOrFail(root.NewEnv(nil).MergeFlags(true), os.Args[1:])
}

// addArgs is the argument record of the "add" method.
type addArgs struct {
	A, B int
}

// A calculator declares the demo interface. Declaration order is the wire
// contract; serve and call construct it identically.
type calculator struct {
	*wirecall.Endpoint

	Square *wirecall.Call[int, int]
	Add    *wirecall.Call[addArgs, int]
	Notify *wirecall.Proc[string]
}

func newCalculator(id wirecall.Identity, t wirecall.Transport) *calculator {
	ep := wirecall.NewEndpoint(id, t, codec.JSON{})
	return &calculator{
		Endpoint: ep,
		Square:   wirecall.NewCall[int, int](ep),
		Add:      wirecall.NewCall[addArgs, int](ep),
		Notify:   wirecall.NewProc[string](ep),
	}
}

func runServe(env *command.Env) error {
	lst, err := net.Listen(splitAddress(flags.Addr))
	if err != nil {
		return err
	}
	defer lst.Close()
	log.Printf("Calculator service at %q", flags.Addr)

	g := taskgroup.New(nil)
	for {
		conn, err := lst.Accept()
		if err != nil {
			g.Wait()
			return err
		}

		g.Go(func() error {
			lk := link.New().OnError(func(err error) {
				log.Printf("Dispatch: %v", err)
			})
			calc := newCalculator(wirecall.StaticID(1), lk)
			calc.Square.Bind(func(v int) int { return v * v })
			calc.Add.Bind(func(a addArgs) int { return a.A + a.B })
			calc.Notify.Bind(func(text string) { log.Printf("Notify: %s", text) })

			lk.Start(calc.Endpoint, channel.IO(conn, conn))
			return lk.Wait()
		})
	}
}

func runCall(env *command.Env) error {
	if len(env.Args) == 0 {
		return env.Usagef("missing method name")
	}

	conn, err := net.Dial(splitAddress(flags.Addr))
	if err != nil {
		return err
	}
	lk := link.New()
	calc := newCalculator(wirecall.StaticID(0), lk)
	lk.Start(calc.Endpoint, channel.IO(conn, conn))
	defer lk.Stop()

	method, args := env.Args[0], env.Args[1:]
	switch method {
	case "square":
		v, err := intArgs(args, 1)
		if err != nil {
			return err
		}
		pc, err := calc.Square.Invoke(v[0])
		if err != nil {
			return err
		}
		return report[int](pc)

	case "add":
		v, err := intArgs(args, 2)
		if err != nil {
			return err
		}
		pc, err := calc.Add.Invoke(addArgs{A: v[0], B: v[1]})
		if err != nil {
			return err
		}
		return report[int](pc)

	case "notify":
		return calc.Notify.Invoke(strings.Join(args, " "))

	default:
		return env.Usagef("unknown method %q", method)
	}
}

// report waits for the pending call and prints its result.
func report[R any](pc wirecall.PendingCall) error {
	v, err := wirecall.Await[R](pc)
	if err != nil {
		return err
	}
	fmt.Println(v)
	return nil
}

func intArgs(args []string, want int) ([]int, error) {
	if len(args) != want {
		return nil, fmt.Errorf("got %d arguments, want %d", len(args), want)
	}
	vs := make([]int, len(args))
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, err
		}
		vs[i] = v
	}
	return vs, nil
}

// splitAddress parses an address string to guess a network type and target:
// an address of the form [host]:port is "tcp", anything else is "unix".
func splitAddress(s string) (network, address string) {
	i := strings.LastIndex(s, ":")
	if i < 0 {
		return "unix", s
	}
	host, port := s[:i], s[i+1:]
	if port == "" || !isServiceName(port) {
		return "unix", s
	} else if strings.IndexByte(host, '/') >= 0 {
		return "unix", s
	}
	return "tcp", s
}

// isServiceName reports whether s looks like a legal service name from the
// services(5) file: letters, digits, and "-".
func isServiceName(s string) bool {
	for _, b := range s {
		if b >= '0' && b <= '9' || b >= 'A' && b <= 'Z' || b >= 'a' && b <= 'z' || b == '-' {
			continue
		}
		return false
	}
	return true
}
