package transcoder

// replacementDecoder implements the replacement pseudo-encoding: any
// non-empty input decodes to exactly one error, after which the rest of the
// stream is swallowed. Labels of encodings historically abused for cross-site
// scripting resolve here.
type replacementDecoder struct {
	emitted bool
}

func (d *replacementDecoder) next(src []byte, last bool) nextResult {
	if len(src) == 0 {
		return needMore(0)
	}
	if d.emitted {
		return needMore(len(src))
	}
	d.emitted = true
	return malformed(1, src[0])
}

func (d *replacementDecoder) pending() int { return 0 }

func (d *replacementDecoder) maxUTF16(n int) int { return 1 }

func (d *replacementDecoder) maxUTF8(n int) int { return 3 }

func (d *replacementDecoder) maxUTF8NoRep(n int) int { return 3 }
