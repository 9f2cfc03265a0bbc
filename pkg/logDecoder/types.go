package logDecoder

// DecodedLog represents a decoded event log with its arguments and metadata.
type DecodedLog struct {
	// LogIndex is the position of the log in the block
	LogIndex uint64 `json:"logIndex"`
	// Address is the contract address that emitted the event
	Address string `json:"address,omitempty"`
	// TransactionHash is the hash of the transaction that emitted the log
	TransactionHash string `json:"transactionHash,omitempty"`
	// EventName is the name of the emitted event
	EventName string `json:"eventName"`
	// Signature is the canonical event signature
	Signature string `json:"signature"`
	// Topic is topic0, the hash of Signature
	Topic string `json:"topic"`
	// Arguments contains the decoded event parameters in declaration order
	Arguments []Argument `json:"arguments"`
}

// Argument is a single decoded event parameter. Exactly one of Value and Error is set.
type Argument struct {
	Position int    `json:"position"`
	Name     string `json:"name,omitempty"`
	Type     string `json:"type"`
	Indexed  bool   `json:"indexed"`
	Value    string `json:"value,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Failed returns the arguments that could not be decoded.
func (dl *DecodedLog) Failed() []Argument {
	var failed []Argument
	for _, a := range dl.Arguments {
		if a.Error != "" {
			failed = append(failed, a)
		}
	}
	return failed
}
