// Package testdroid provides types, interfaces, and helpers for working with
// the Bitbar (Testdroid) device-testing cloud REST API.
//
// # Overview
//
// The testdroid package defines the domain types (e.g., Device, LabelGroup,
// Project, DeviceSession, ProxySession) and the interfaces for
// resource-oriented clients (e.g., DevicesClient, ProxiesClient). A concrete
// implementation of these clients is provided by the tdclient package, which
// wires configuration, transport, and authentication. Most consumers should
// import tdclient to construct a client and then interact with the resource
// client interfaces exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/bitbar/testdroid-go/pkg/tdclient"
//	  "github.com/bitbar/testdroid-go/pkg/testdroid"
//	)
//
//	func main() {
//	  client, err := tdclient.NewWithPassword("https://cloud.bitbar.com", "user@example.com", "secret")
//	  if err != nil {
//	    log.Fatal(err)
//	  }
//
//	  devices, err := client.Devices().List(context.Background(), 0)
//	  if err != nil {
//	    log.Fatal(err)
//	  }
//
//	  for _, d := range devices.Data {
//	    log.Println(d.ID, d.DisplayName)
//	  }
//	}
//
// # Device sessions and proxies
//
// A device session is a leased exclusive claim on a remote device. After
// starting one, a network proxy (adb or marionette) bridging to the claimed
// device becomes available asynchronously; Proxies().Get polls the proxy
// search endpoint until the proxy appears or the retry budget is exhausted.
//
//	session, err := client.DeviceSessions().Start(ctx, device.ID)
//	if err != nil {
//	  log.Fatal(err)
//	}
//	defer func() { _ = client.DeviceSessions().Stop(ctx, session.ID) }()
//
//	proxy, err := client.Proxies().Get(ctx, testdroid.ProxyTypeADB, session.ID)
//	if err != nil {
//	  log.Fatal(err)
//	}
//	log.Printf("adb connect %s:%d", proxy.Host, proxy.Port)
package testdroid
