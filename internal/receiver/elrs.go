package receiver

// ELRSDecoder is an alias for CRSFDecoder: ExpressLRS speaks CRSF
// framing over its own baud rate, so no separate state machine is
// needed, matching WingFC's elrs.go.
type ELRSDecoder = CRSFDecoder

// NewELRSDecoder returns a fresh decoder.
func NewELRSDecoder() *ELRSDecoder {
	return NewCRSFDecoder()
}
