package types

// Standalone tournament channel (parallel variant outside the menu channel;
// bracket sessions in this client ride the menu channel instead).
//
// Client -> Server
// join_tournament:
//   numPlayers: number
//   userProfile: UserProfile
//
// leave_tournament:
//   tournament_id: string
//   player_id: string
//
// start_match:
//   tournament_id: string
//   match_id: string
//
// Server -> Client
// tournament_status:
//   players: [{ tournament_name: string }]
//   round: number
//   matchups: [{ player1: string, player2: string }]
//
// match_ready:
//   match_id: string
//   player1: string
//   player2: string
//
// tournament_cancelled:
//   message: string
//
// tournament_end:
//   tournament_winner: string
//   match_history: [{ round, player1, player2, winner }]
