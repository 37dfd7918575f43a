package contract

import (
	"crypto/x509"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"supplytrace/ledger"

	"github.com/hyperledger/fabric-chaincode-go/shimtest"
	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/timestamppb"
)

const (
	ownerID    = "x509::CN=farmer1,OU=client::CN=ca.org1.example.com"
	strangerID = "x509::CN=retailer1,OU=client::CN=ca.org1.example.com"
)

var genesis = time.Unix(1_700_000_000, 0).UTC()

// fakeIdentity satisfies cid.ClientIdentity with a fixed ID.
type fakeIdentity struct {
	id string
}

func (f fakeIdentity) GetID() (string, error)    { return f.id, nil }
func (f fakeIdentity) GetMSPID() (string, error) { return "Org1MSP", nil }
func (f fakeIdentity) GetAttributeValue(string) (string, bool, error) {
	return "", false, nil
}
func (f fakeIdentity) AssertAttributeValue(string, string) error { return nil }
func (f fakeIdentity) GetX509Certificate() (*x509.Certificate, error) {
	return nil, nil
}

// testLedger drives a MockStub world state one transaction at a time.
type testLedger struct {
	t    *testing.T
	stub *shimtest.MockStub
	seq  int
}

func newTestLedger(t *testing.T) *testLedger {
	t.Helper()
	return &testLedger{t: t, stub: shimtest.NewMockStub("supplytrace", nil)}
}

// at starts a new transaction stamped with the given time. Events left over
// from the previous transaction are discarded.
func (l *testLedger) at(ts time.Time) *testLedger {
	l.drainEvents()
	if l.stub.TxID != "" {
		l.stub.MockTransactionEnd(l.stub.TxID)
	}
	l.seq++
	l.stub.MockTransactionStart(fmt.Sprintf("tx-%03d", l.seq))
	l.stub.TxTimestamp = timestamppb.New(ts)
	return l
}

func (l *testLedger) host(identity string) *ledger.Host {
	return ledger.NewHost(l.stub, fakeIdentity{id: identity})
}

func (l *testLedger) engine() *TraceabilityEngine {
	h := l.host(ownerID)
	return NewTraceabilityEngine(h, h, h)
}

func (l *testLedger) registry() *AccessRegistry {
	h := l.host(ownerID)
	return NewAccessRegistry(h, h)
}

func (l *testLedger) ctx(identity string) *contractapi.TransactionContext {
	ctx := new(contractapi.TransactionContext)
	ctx.SetStub(l.stub)
	if identity != "" {
		ctx.SetClientIdentity(fakeIdentity{id: identity})
	}
	return ctx
}

// event returns the single event set by the current transaction and decodes
// its payload into a generic map.
func (l *testLedger) event() (string, map[string]interface{}) {
	l.t.Helper()
	select {
	case ev := <-l.stub.ChaincodeEventsChannel:
		payload := map[string]interface{}{}
		require.NoError(l.t, json.Unmarshal(ev.Payload, &payload))
		return ev.EventName, payload
	default:
		l.t.Fatal("expected a chaincode event, none was set")
		return "", nil
	}
}

func (l *testLedger) requireNoEvent() {
	l.t.Helper()
	select {
	case ev := <-l.stub.ChaincodeEventsChannel:
		l.t.Fatalf("unexpected chaincode event %q", ev.EventName)
	default:
	}
}

func (l *testLedger) drainEvents() {
	for {
		select {
		case <-l.stub.ChaincodeEventsChannel:
		default:
			return
		}
	}
}

// seedRecord initializes a record at genesis and returns the time at which
// the first mutation becomes allowed.
func (l *testLedger) seedRecord(id, productName string) time.Time {
	l.t.Helper()
	l.at(genesis)
	_, err := l.engine().Initialize(id, productName, ownerID)
	require.NoError(l.t, err)
	return genesis.Add(time.Minute)
}

func interval(n int) time.Duration {
	return time.Duration(n) * time.Minute
}
