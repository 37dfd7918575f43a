package main

import (
	"supplytrace/config"
	"supplytrace/contract"

	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/hyperledger/fabric/common/flogging"
)

var logger = flogging.MustGetLogger("supplytrace.main")

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Error loading chaincode configuration: " + err.Error())
	}
	flogging.ActivateSpec(cfg.LogSpec)

	cc, err := contractapi.NewChaincode(&contract.SupplyChainContract{})
	if err != nil {
		panic("Error creating SupplyChainContract: " + err.Error())
	}

	if !cfg.ExternalService() {
		if err := cc.Start(); err != nil {
			panic("Error starting chaincode: " + err.Error())
		}
		return
	}

	tlsMaterial, err := cfg.LoadTLS()
	if err != nil {
		panic("Error loading chaincode TLS material: " + err.Error())
	}
	server := &shim.ChaincodeServer{
		CCID:    cfg.ChaincodeID,
		Address: cfg.ServerAddress,
		CC:      cc,
		TLSProps: shim.TLSProperties{
			Disabled:      cfg.TLSDisabled,
			Key:           tlsMaterial.Key,
			Cert:          tlsMaterial.Cert,
			ClientCACerts: tlsMaterial.ClientCACerts,
		},
	}
	logger.Infof("Starting chaincode '%s' as an external service on %s", cfg.ChaincodeID, cfg.ServerAddress)
	if err := server.Start(); err != nil {
		panic("Error starting chaincode server: " + err.Error())
	}
}
