package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// problemFile is one minimization problem read from a plain-text file.
type problemFile struct {
	NVars     int
	Ones      []int
	DontCares []int
	Names     []string
}

// parseProblemFile reads a DIMACS-comment-style plain-text problem
// description: lines starting with "c" are ignored, "vars N" sets the
// variable count, "names A B C" supplies variable names, and "ones"/
// "dont-cares" lines list the corresponding minterms, grounded on the
// teacher's ParseCNF line-oriented reading style.
func parseProblemFile(r io.Reader) (problemFile, error) {
	var pf problemFile
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "c") {
			continue
		}
		fields := strings.Fields(line)
		keyword := fields[0]
		args := fields[1:]
		switch keyword {
		case "vars":
			if len(args) != 1 {
				return problemFile{}, fmt.Errorf("line %d: \"vars\" expects exactly one value", lineNo)
			}
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return problemFile{}, fmt.Errorf("line %d: invalid variable count %q: %w", lineNo, args[0], err)
			}
			pf.NVars = n
		case "names":
			pf.Names = append([]string(nil), args...)
		case "ones":
			ms, err := parseInts(args)
			if err != nil {
				return problemFile{}, fmt.Errorf("line %d: %w", lineNo, err)
			}
			pf.Ones = append(pf.Ones, ms...)
		case "dont-cares":
			ms, err := parseInts(args)
			if err != nil {
				return problemFile{}, fmt.Errorf("line %d: %w", lineNo, err)
			}
			pf.DontCares = append(pf.DontCares, ms...)
		default:
			return problemFile{}, fmt.Errorf("line %d: unrecognized keyword %q", lineNo, keyword)
		}
	}
	if err := scanner.Err(); err != nil {
		return problemFile{}, fmt.Errorf("reading problem file: %w", err)
	}
	if pf.NVars == 0 {
		return problemFile{}, fmt.Errorf("problem file has no \"vars\" line")
	}
	return pf, nil
}

func parseInts(fields []string) ([]int, error) {
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid minterm %q: %w", f, err)
		}
		out = append(out, v)
	}
	return out, nil
}
