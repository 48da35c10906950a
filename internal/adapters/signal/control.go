package signal

import "github.com/dkeye/Dicecells/internal/core"

func (ctl *SignalWSController) handlePing(conn *WsSignalConn) {
	ctl.send(conn, core.MsgPong, nil)
}
