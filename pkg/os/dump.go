// SPDX-License-Identifier: Apache-2.0

package os

import (
	"log"
	"runtime"
)

// GoDump writes a full goroutine dump to the standard logger. It is meant
// to be registered as a SIGQUIT callback on the SignalHandler so a stuck
// provisioning run can be inspected without killing it:
//
//	handler.Register(syscall.SIGQUIT, func(os.Signal) {
//		GoDump()
//	})
func GoDump() {
	buf := make([]byte, 1<<20)
	stackLen := runtime.Stack(buf, true)
	log.Printf("===== goroutine dump start =====\n%s\n===== goroutine dump end =====\n", buf[:stackLen])
}
