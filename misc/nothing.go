package misc

// Nothing is the argument or reply of rpc calls that carry no data.
type Nothing struct{}
