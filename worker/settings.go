package worker

import (
	"encoding/json"
	"fmt"

	"DistributedRainbow/misc"
	"DistributedRainbow/rpc"

	"github.com/BrugadaSyndrome/bslogger"
)

type settings struct {
	logger bslogger.Logger

	CoordinatorAddress string
	ServerAddress      string
	Transport          rpc.Transport
}

func NewSettings(settingsFile string) settings {
	s := settings{
		logger: bslogger.NewLogger("WorkerSettings", bslogger.Normal, nil),
	}
	err, bytes := misc.ReadFile(settingsFile)
	misc.CheckError(err, s.logger, misc.Fatal)
	misc.CheckError(json.Unmarshal(bytes, &s), s.logger, misc.Fatal)
	misc.CheckError(s.Verify(), s.logger, misc.Fatal)
	s.logger.Debug(s.String())
	return s
}

func (s *settings) String() string {
	output := "\nWorker settings\n"
	output += fmt.Sprintf("Coordinator Address: %s\n", s.CoordinatorAddress)
	output += fmt.Sprintf("My Address: %s\n", s.ServerAddress)
	output += fmt.Sprintf("Transport: %s\n", s.Transport)
	return output
}

func (s *settings) Verify() error {
	if s.CoordinatorAddress == "" {
		s.CoordinatorAddress = fmt.Sprintf("%s:%s", misc.GetLocalAddress(), "51000")
	}
	if s.ServerAddress == "" {
		// Find a free port to use for this worker
		port, err := misc.GetFreePort()
		if err != nil {
			return err
		}
		s.ServerAddress = fmt.Sprintf("%s:%d", misc.GetLocalAddress(), port)
	}
	if s.Transport == "" {
		s.Transport = rpc.Tcp
	}
	return s.Transport.Verify()
}
