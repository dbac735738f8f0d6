package shape

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Domain prefixes for content-addressed identity. The version suffix
// enables future algorithm migration without colliding with old IDs.
const (
	DomainPlan    = "previewkit/plan/v1"
	DomainFixture = "previewkit/fixture/v1"
)

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data). The null byte prevents domain/data
// boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// PlanID computes the content-addressed ID of a plan. Stable across runs
// for deterministic plans; plans containing randomly drawn identifier
// literals hash those literals as planned, so two planning passes with
// different entropy produce different IDs.
func PlanID(p *Plan) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("marshal plan for hashing: %w", err)
	}
	return hashWithDomain(DomainPlan, data), nil
}

// FixtureID computes the content-addressed ID of a rendered value for a
// given type. Uses canonical serialization, so equal values always share
// an ID regardless of field declaration order.
func FixtureID(typeName string, v Value) (string, error) {
	body, err := MarshalCanonical(v)
	if err != nil {
		return "", fmt.Errorf("marshal value for hashing: %w", err)
	}
	data := make([]byte, 0, len(typeName)+1+len(body))
	data = append(data, typeName...)
	data = append(data, 0x00)
	data = append(data, body...)
	return hashWithDomain(DomainFixture, data), nil
}
