package report

import (
	"diagsynth/internal/diag"
	"diagsynth/internal/reason"
	"diagsynth/internal/source"
)

func sp(start, end uint32) source.Span {
	return source.Span{File: 0, Start: start, End: end}
}

func lines(infos []diag.Info) [][]string {
	out := make([][]string, len(infos))
	for i, info := range infos {
		out[i] = info.Lines
	}
	return out
}

var (
	strAt = func(loc source.Span) reason.Reason { return reason.Type(loc, reason.DescString) }
	numAt = func(loc source.Span) reason.Reason { return reason.Type(loc, reason.DescNumber) }
)
