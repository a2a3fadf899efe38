// Copyright 2025 The packetd Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// sasl.go builds connection.start-ok response blobs for the two
// mechanisms this client speaks.
package wire

// PlainResponse builds the SASL PLAIN response: an authzid-less
// "\0login\0password" triple, exactly as RFC 4616 and every AMQP broker
// expect it.
func PlainResponse(login, password string) string {
	return "\x00" + login + "\x00" + password
}

// ExternalResponse is the SASL EXTERNAL response: empty, since the identity
// is already established by the TLS client certificate.
func ExternalResponse() string { return "" }

const (
	MechanismPlain    = "PLAIN"
	MechanismExternal = "EXTERNAL"
)
