package pfcpctx

// This file names, but does not implement, two collaborators that sit
// outside this core's own scope: the pending-transaction table a PFCP
// peer's retry/timeout machinery owns, and the packet buffer a FAR with
// ApplyActionBuffer hands buffered PDUs to once a downstream datapath is
// ready to flush them. Nothing in this package constructs or calls
// either one.

// TransactionTable tracks pending PFCP request/response pairs for a
// peer. NodeRemove does not call DeleteAll: it releases the Node's
// GTP-U resources and unregisters it, and deleting the peer's pending
// transactions is left to the caller.
type TransactionTable interface {
	DeleteAll(peer *Node)
}

// PacketBuffer accepts PDUs a FAR buffered while ApplyAction is
// ApplyActionBuffer, for a datapath collaborator to flush once the
// session transitions out of buffering. A FAR keeps its own buffered
// packets in FAR.BufferedPackets; it does not hand them to a
// PacketBuffer.
type PacketBuffer interface {
	Enqueue(seid uint64, farID int, pkt []byte)
}
