package rpc

import (
	"fmt"
	"net/rpc"
	"sync"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/pkg/errors"
)

type TcpClient struct {
	client        *rpc.Client
	mutex         sync.Mutex
	serverAddress string

	Logger bslogger.Logger
	Name   string
}

func NewTcpClient(serverAddress string, name string) *TcpClient {
	return &TcpClient{
		serverAddress: serverAddress,
		Name:          name,
		Logger:        bslogger.NewLogger(name, bslogger.Normal, nil),
	}
}

func (tc *TcpClient) Address() string {
	return tc.serverAddress
}

func (tc *TcpClient) Connect() error {
	tc.mutex.Lock()
	defer tc.mutex.Unlock()

	if tc.client != nil {
		tc.Logger.Warningf("Already connected to server at address %s", tc.serverAddress)
		return nil
	}

	client, err := rpc.Dial("tcp", tc.serverAddress)
	if err != nil {
		tc.Logger.Errorf("Connecting to server at address %s", tc.serverAddress)
		return errors.Wrapf(err, "dialing %s", tc.serverAddress)
	}
	tc.client = client
	tc.Logger.Infof("Connected to server at: %s", tc.serverAddress)
	return nil
}

func (tc *TcpClient) Call(method string, request interface{}, reply interface{}) error {
	tc.mutex.Lock()
	client := tc.client
	tc.mutex.Unlock()

	if client == nil {
		message := fmt.Sprintf("Not connected to server at address %s : method %s", tc.serverAddress, method)
		tc.Logger.Error(message)
		return errors.New(message)
	}

	err := client.Call(method, request, reply)
	if err != nil {
		tc.Logger.Debugf("Calling server at address: %s, method: %s - %s", tc.serverAddress, method, err)
		return err
	}
	tc.Logger.Debugf("Calling server [%s] %s", tc.serverAddress, method)
	return nil
}

func (tc *TcpClient) Disconnect() error {
	tc.mutex.Lock()
	defer tc.mutex.Unlock()

	if tc.client == nil {
		message := fmt.Sprintf("Already disconnected from server at address %s", tc.serverAddress)
		tc.Logger.Warning(message)
		return errors.New(message)
	}

	err := tc.client.Close()
	tc.client = nil
	if err != nil {
		tc.Logger.Errorf("Disconnecting from server at serverAddress %s", tc.serverAddress)
		return err
	}
	tc.Logger.Infof("Disconnected from server at %s", tc.serverAddress)
	return nil
}
